package middlewares

const (
	CtxRequestID = "request_id"
	ctxUserIDKey = "session.userID"
)
