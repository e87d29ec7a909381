package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Wire constants.
const (
	protocolVersion = "1.1"
	contentType     = "application/json"

	// maxResponseSize caps a single response body (device data dumps are large).
	maxResponseSize = 64 << 20
)

// request is the JSON-RPC request envelope.
type request struct {
	Method  string `json:"method"`
	Params  Params `json:"params"`
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
}

// post sends one request and converts every failure into a Response.
// When withSession is true the session id is merged into params.
func (c *Client) post(ctx context.Context, sessionID, method string, extra Params, withSession bool) Response {
	if resp, ok := c.checkCredentials(method); !ok {
		return resp
	}

	params := make(Params, len(extra)+1)
	for k, v := range extra {
		params[k] = v
	}
	if withSession && sessionID != "" {
		params[ParamSessionID] = sessionID
	}

	payload, err := json.Marshal(request{
		Method:  method,
		Params:  params,
		JSONRPC: protocolVersion,
		ID:      0,
	})
	if err != nil {
		c.logger.Error("json-rpc encode failed", "method", method, "error", err)
		return errorResponse(err.Error())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("json-rpc request build failed", "method", method, "error", err)
		return errorResponse(err.Error())
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("json-rpc post failed", "method", method, "error", err)
		return errorResponse(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize)) //nolint:errcheck // drain for reuse
		c.logger.Warn("json-rpc status error", "method", method, "status", resp.StatusCode)
		return errorResponse(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Error("json-rpc read failed", "method", method, "error", err)
		return errorResponse(err.Error())
	}

	return c.decodeBody(method, body)
}

// decodeBody parses a response body. Hub scripts occasionally emit stray
// backslashes, so a body that fails to parse is retried once with every
// backslash removed.
func (c *Client) decodeBody(method string, body []byte) Response {
	var out Response
	err := json.Unmarshal(body, &out)
	if err == nil {
		return c.checkDecoded(method, out)
	}

	c.logger.Debug("json-rpc malformed body, retrying without backslashes", "method", method, "error", err)
	repaired := bytes.ReplaceAll(body, []byte(`\`), nil)
	out = Response{}
	if err := json.Unmarshal(repaired, &out); err != nil {
		c.logger.Error("json-rpc decode failed", "method", method, "error", err)
		return errorResponse(err.Error())
	}
	return c.checkDecoded(method, out)
}

// checkDecoded turns a body carrying neither result nor error (a bare
// null, an empty object) into an error response. An explicit
// "result": null is kept.
func (c *Client) checkDecoded(method string, out Response) Response {
	if out.Error == nil && len(out.Result) == 0 {
		c.logger.Warn("json-rpc response without result", "method", method)
		return errorResponse(ErrInvalidResponse.Error())
	}
	return out
}
