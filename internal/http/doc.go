// Package http sends a single HTTP request described by a URL, method,
// headers and an optional JSON body, and returns a normalized response.
//
// BuildOptions turns a Request into transport Options plus the serialized
// payload; the Content-Length it adds counts UTF-8 bytes. Send opens the
// request on a Transport, writes the payload, reads the whole response body
// and decodes it as JSON when any content-type header contains "json".
//
// Basic Usage:
//
//	req := http.NewRequest("POST", "https://api.example.com/prod/employees/search").
//	    WithHeader("Accept-Language", "en-US").
//	    WithBody(map[string]string{"nameSearch": "ŁUKASZ"})
//
//	resp, err := http.NewClient().Send(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(resp.StatusCode, resp.StatusMessage, resp.Body)
//
// There are no retries, redirects are not followed, and no timeout is
// applied; pass a context with a deadline if one is needed.
package http
