package apperr

// ErrorBody is the JSON envelope for every non-2xx response.
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

// ErrorPayload carries the caller-visible message and the HTTP status it was sent with.
type ErrorPayload struct {
	Message string `json:"message"`
	Code    uint16 `json:"code"`
}

// Response maps err to the status code and body sent to the caller.
func Response(err error) (int, ErrorBody) {
	appErr := From(err)
	if appErr == nil {
		appErr = Internal("nil error reported")
	}
	status := appErr.Status()
	return status, ErrorBody{
		Error: ErrorPayload{
			Message: appErr.PublicMessage(),
			Code:    uint16(status),
		},
	}
}
