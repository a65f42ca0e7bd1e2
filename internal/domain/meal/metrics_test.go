package meal

import "testing"

func mealsFromPlanned(planned ...bool) []Meal {
	out := make([]Meal, 0, len(planned))

	for i, p := range planned {
		out = append(out, Meal{
			ID:      "meal-" + string(rune('a'+i)),
			Name:    "Meal",
			Planned: p,
		})
	}

	return out
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name  string
		meals []Meal
		want  Metrics
	}{
		{
			name:  "empty",
			meals: nil,
			want:  Metrics{},
		},
		{
			name:  "mixed_sequence",
			meals: mealsFromPlanned(true, true, false, true),
			want:  Metrics{TotalMeals: 4, TotalPlanned: 3, TotalUnplanned: 1, BestSequence: 2},
		},
		{
			name:  "all_planned",
			meals: mealsFromPlanned(true, true, true, true, true),
			want:  Metrics{TotalMeals: 5, TotalPlanned: 5, TotalUnplanned: 0, BestSequence: 5},
		},
		{
			name:  "none_planned",
			meals: mealsFromPlanned(false, false, false),
			want:  Metrics{TotalMeals: 3, TotalPlanned: 0, TotalUnplanned: 3, BestSequence: 0},
		},
		{
			name:  "run_at_the_end",
			meals: mealsFromPlanned(true, false, true, true, true),
			want:  Metrics{TotalMeals: 5, TotalPlanned: 4, TotalUnplanned: 1, BestSequence: 3},
		},
		{
			name:  "single_unplanned",
			meals: mealsFromPlanned(false),
			want:  Metrics{TotalMeals: 1, TotalPlanned: 0, TotalUnplanned: 1, BestSequence: 0},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMetrics(tt.meals)

			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
