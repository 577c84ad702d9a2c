package serverutils

// APIError is the error envelope returned by every endpoint. The
// `response` field carries a user-presentable message so the widget
// can render something even on failure.
type APIError struct {
	Error    string `json:"error"`
	Response string `json:"response,omitempty"`
	Type     string `json:"type,omitempty"`
}

func ErrorResponse(message string) APIError {
	return APIError{Error: message}
}

// ChatErrorResponse pairs the server-side error with the apology shown
// to the end user.
func ChatErrorResponse(errMsg, userMsg string) APIError {
	return APIError{
		Error:    errMsg,
		Response: userMsg,
		Type:     "text",
	}
}
