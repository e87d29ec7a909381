// Package ccu fetches device metadata and values from a CCU hub over a
// shared JSON-RPC session, one Client per hub interface.
//
// Fetch results are written straight into the stores a Client is built with
// (the caches), so the caches never see wire types:
//
//	client := ccu.New("HmIP-RF", rpc, details, data)
//	if err := client.FetchDeviceDetails(ctx); err != nil {
//	    return err
//	}
//
// Bulk device values come from an embedded ReGa script whose output keys
// match cache.DataKey.
package ccu
