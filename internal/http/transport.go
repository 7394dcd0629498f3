package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Transport opens outbound requests. Any networking stack, or a fake in
// tests, can sit behind it.
type Transport interface {
	Open(ctx context.Context, opts *Options) (Outgoing, error)
}

// Outgoing is an open request. The body is written first, then End sends
// the request and waits for the response head.
type Outgoing interface {
	io.Writer
	End() (*Incoming, error)
}

// Incoming is a response as handed back by a Transport. Body must be read to
// EOF and closed by the receiver.
type Incoming struct {
	StatusCode    int
	StatusMessage string
	Headers       http.Header
	Body          io.ReadCloser
}

// NetTransport is a Transport backed by net/http. Each request gets its own
// connection, redirects are returned rather than followed, and no timeout is
// set.
type NetTransport struct {
	httpClient *http.Client
}

// NewNetTransport creates a NetTransport
func NewNetTransport() *NetTransport {
	return &NetTransport{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Open implements Transport
func (t *NetTransport) Open(ctx context.Context, opts *Options) (Outgoing, error) {
	return &netOutgoing{ctx: ctx, client: t.httpClient, opts: opts}, nil
}

type netOutgoing struct {
	ctx    context.Context
	client *http.Client
	opts   *Options
	body   bytes.Buffer
}

func (o *netOutgoing) Write(p []byte) (int, error) {
	return o.body.Write(p)
}

func (o *netOutgoing) End() (*Incoming, error) {
	var body io.Reader = http.NoBody
	if o.body.Len() > 0 {
		body = bytes.NewReader(o.body.Bytes())
	}

	httpReq, err := http.NewRequestWithContext(o.ctx, o.opts.Method, o.opts.URL(), body)
	if err != nil {
		return nil, err
	}
	httpReq.ContentLength = int64(o.body.Len())

	// Assign directly so header names keep the caller's casing. net/http
	// only recognizes Host and User-Agent under their canonical keys.
	for key, value := range o.opts.Headers {
		switch {
		case strings.EqualFold(key, "Host"):
			httpReq.Host = value
		case strings.EqualFold(key, "User-Agent"):
			httpReq.Header.Set("User-Agent", value)
		default:
			httpReq.Header[key] = []string{value}
		}
	}

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, err
	}

	return &Incoming{
		StatusCode:    httpResp.StatusCode,
		StatusMessage: reasonPhrase(httpResp),
		Headers:       httpResp.Header,
		Body:          httpResp.Body,
	}, nil
}

// reasonPhrase strips the status code from "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	return strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
}
