package przelewy24

import "encoding/json"

// Every gateway response body is exactly one of {"data": T} or
// {"error": string, "code": int}, never both.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  int             `json:"code"`
}

// unwrap decodes a response body into out. An error envelope (or a non-2xx
// status) becomes a gateway *Error carrying the gateway's message and code;
// an unparseable body is a transport failure.
func unwrap(status int, body []byte, fallback string, out any) *Error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return transportError(fallback, err)
	}
	if env.Error != "" || status < 200 || status >= 300 {
		msg := env.Error
		if msg == "" {
			msg = fallback
		}
		return gatewayError(msg, env.Code)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return transportError(fallback, err)
		}
	}
	return nil
}
