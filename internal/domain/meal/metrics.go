package meal

// Metrics are the adherence stats for one user's full meal history.
type Metrics struct {
	TotalMeals     int `json:"totalMeals"`
	TotalPlanned   int `json:"totalPlanned"`
	TotalUnplanned int `json:"totalUnplanned"`
	BestSequence   int `json:"bestSequence"`
}

// ComputeMetrics walks the meals once in creation order.
// BestSequence is the longest contiguous run of planned meals; the running
// counter resets on an unplanned meal and best is taken on each increment,
// so a trailing planned run is counted without a post-pass fixup.
func ComputeMetrics(meals []Meal) Metrics {
	m := Metrics{TotalMeals: len(meals)}

	current := 0

	for _, item := range meals {
		if item.Planned {
			m.TotalPlanned++
			current++

			if current > m.BestSequence {
				m.BestSequence = current
			}
		} else {
			current = 0
		}
	}

	m.TotalUnplanned = m.TotalMeals - m.TotalPlanned

	return m
}
