// Package central coordinates the caches of one CCU hub.
//
// A Central owns the device details cache and the central data cache,
// builds one hub client per configured interface and keeps the caches
// fresh in a background loop:
//
//	c, err := central.New(central.Options{
//	    Name:       "ccu",
//	    Interfaces: []string{"HmIP-RF", "BidCos-RF"},
//	    RPC:        rpc,
//	})
//	if err := c.Start(ctx); err != nil { ... }
//	defer c.Stop(context.Background())
//
//	room, ok := c.GetRoom("000A1")
//
// Entities registered with AddEntity read their live values through a
// per-device value cache, which prefers the bulk-loaded central data.
package central
