// Package jsonrpc implements the session-managed JSON-RPC client for a CCU hub.
//
// The hub exposes JSON-RPC 1.1 over HTTP(S) at /api/homematic.cgi. Every call
// other than Session.login carries a session id in the "_session_id_" param.
//
// A Client either keeps one long-lived session (renewed before each call) or
// wraps a call in a one-shot login/logout:
//
//	c := jsonrpc.New(jsonrpc.Config{Host: "ccu.local", Username: "Admin", Password: "..."})
//	resp := c.Call(ctx, "Interface.listInterfaces", nil, jsonrpc.CallOptions{KeepSession: true})
//	if !resp.OK() {
//	    log.Println(resp.ErrorText())
//	}
//	defer c.Close(ctx)
//
// Hub failures never surface as Go errors. They come back as a Response with
// a non-nil Error and an empty object Result.
package jsonrpc
