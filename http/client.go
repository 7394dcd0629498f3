package http

import (
	"context"

	internal "github.com/wesleyorama2/jsonreq/internal/http"
)

type (
	// Request describes one outbound request. Body, when non-nil, is sent
	// as JSON.
	Request = internal.Request
	// Options are the transport options derived from a Request.
	Options = internal.Options
	// Response is the normalized result of a request.
	Response = internal.Response
	// Transport opens outbound requests.
	Transport = internal.Transport
	// Outgoing is an open request handle.
	Outgoing = internal.Outgoing
	// Incoming is a response as produced by a Transport.
	Incoming = internal.Incoming
	// Client sends requests with optional diagnostics logging.
	Client = internal.Client
	// ClientOption configures a Client.
	ClientOption = internal.ClientOption
	// MalformedURLError reports a URL that cannot be used.
	MalformedURLError = internal.MalformedURLError
	// BodyDecodeError reports a JSON-typed response that did not decode.
	BodyDecodeError = internal.BodyDecodeError
)

// ErrMalformedURL matches every MalformedURLError.
var ErrMalformedURL = internal.ErrMalformedURL

// Client construction.
var (
	NewClient     = internal.NewClient
	WithTransport = internal.WithTransport
	WithLogger    = internal.WithLogger
)

// NewRequest creates a new request descriptor.
func NewRequest(method, rawURL string) *Request {
	return internal.NewRequest(method, rawURL)
}

// NewNetTransport returns the net/http backed Transport.
func NewNetTransport() Transport {
	return internal.NewNetTransport()
}

// BuildOptions derives transport options and the JSON payload from req
// without any network I/O.
func BuildOptions(req *Request) (*Options, []byte, error) {
	return internal.BuildOptions(req)
}

// Send issues req over t and returns the normalized response.
func Send(ctx context.Context, t Transport, req *Request) (*Response, error) {
	return internal.Send(ctx, t, req)
}
