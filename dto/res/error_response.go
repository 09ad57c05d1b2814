package res

// ErrorResponse is rendered by the fiber error handler and the JWT
// middleware.
type ErrorResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"statusCode"`
	Error      interface{} `json:"error"`
}
