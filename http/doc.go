// Package http is the importable face of jsonreq: it exposes the request
// descriptor, the transport capability and the normalized response so other
// modules can send requests or plug in their own Transport.
//
// Basic Usage:
//
//	resp, err := http.Send(context.Background(), http.NewNetTransport(), &http.Request{
//	    URL:    "https://checkip.amazonaws.com/",
//	    Method: "GET",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if body, ok := resp.Body.(string); ok {
//	    fmt.Print(body)
//	}
//
// Thread Safety:
//
// Send keeps no state between calls. Concurrent calls are independent and
// complete in whatever order their transports deliver.
package http
