package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Structured error messages returned in Response.Error.
const (
	MsgNoUsername        = "No username set."
	MsgNoPassword        = "No password set."
	MsgUnableOpenSession = "Unable to open session."
)

// emptyResult is the result carried by every locally built error response.
var emptyResult = json.RawMessage(`{}`)

// Params are the named parameters of a JSON-RPC call.
type Params map[string]any

// Response is the hub's answer to a call, or a locally built error in the same shape.
//
// Error is nil on success and otherwise holds whatever the hub or the client
// put there: a string, an HTTP status code (int) or a decoded JSON object.
// Result is kept raw so callers decode it into their own types.
type Response struct {
	Error  any             `json:"error"`
	Result json.RawMessage `json:"result"`
}

// errorResponse builds the structured error shape {"error": err, "result": {}}.
func errorResponse(err any) Response {
	return Response{Error: err, Result: emptyResult}
}

// OK reports whether the hub answered without an error.
func (r Response) OK() bool {
	return r.Error == nil
}

// Decode unmarshals the result into v.
func (r Response) Decode(v any) error {
	if len(r.Result) == 0 {
		return fmt.Errorf("%w: empty result", ErrInvalidResponse)
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// ErrorText renders the error field for logs and wrapped errors.
func (r Response) ErrorText() string {
	switch e := r.Error.(type) {
	case nil:
		return ""
	case string:
		return e
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			return msg
		}
	}
	b, err := json.Marshal(r.Error)
	if err != nil {
		return fmt.Sprint(r.Error)
	}
	return string(b)
}

// resultTruthy mirrors the hub convention that null, false, 0, "" and empty
// containers mean "no result".
func resultTruthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// resultString returns the result as a string, if it is one.
func resultString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
