package types

// SuccessEnvelope wraps every successful JSON body as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details carry field messages on
// validation failures and the login redirect on 401s.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewErrorEnvelope builds the error body. A nil details is omitted on the wire.
func NewErrorEnvelope(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Message: message, Details: details}}
}

// Redirect returns details.redirect when the error carries one.
func (e APIError) Redirect() string {
	switch d := e.Details.(type) {
	case map[string]any:
		s, _ := d["redirect"].(string)
		return s
	case map[string]string:
		return d["redirect"]
	}
	return ""
}
