package res

// CommonResponse is the envelope of every successful JSON response.
type CommonResponse[T any] struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
}
