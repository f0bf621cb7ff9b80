package http

const (
	KeyHeaderContentType     = "Content-Type"
	KeyHeaderRequestID       = "X-Request-Id"
	KeyHeaderCartSession     = "X-Cart-Session"
	KeyHeaderAuthorization   = "Authorization"
	ValueHeaderJson          = "application/json"
	StatusSuccess            = "success"
	StatusFailed             = "failed"
	OrderConfirmationPathFmt = "/order-confirmation/%s"
)
