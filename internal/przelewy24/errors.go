package przelewy24

import "fmt"

// Error is the single error type every client operation can fail with.
// Gateway rejections keep the gateway's own message and numeric code
// verbatim; transport and decoding failures have no gateway code and carry
// the underlying error in Detail.
type Error struct {
	Message string
	Code    int
	Detail  error
}

func (e *Error) Error() string {
	if e.HasGatewayCode() {
		return fmt.Sprintf("przelewy24: %s (code %d)", e.Message, e.Code)
	}
	if e.Detail != nil {
		return fmt.Sprintf("przelewy24: %s: %v", e.Message, e.Detail)
	}
	return "przelewy24: " + e.Message
}

func (e *Error) Unwrap() error { return e.Detail }

// HasGatewayCode reports whether the error came from a gateway error
// envelope rather than the transport.
func (e *Error) HasGatewayCode() bool { return e.Code != 0 }

func transportError(msg string, err error) *Error {
	return &Error{Message: msg, Detail: err}
}

func gatewayError(msg string, code int) *Error {
	if code == 0 {
		code = -1
	}
	return &Error{Message: msg, Code: code}
}
