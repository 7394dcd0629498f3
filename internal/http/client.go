package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"
)

// chunkSize is how much of the response body is read per step.
const chunkSize = 32 * 1024

// Client sends requests over a Transport
type Client struct {
	transport Transport
	logger    *zap.Logger
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new client with the given options. Without options it
// uses a NetTransport and discards diagnostics.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		logger: zap.NewNop(),
	}

	for _, option := range options {
		option(client)
	}

	if client.transport == nil {
		client.transport = NewNetTransport()
	}

	return client
}

// WithTransport sets the transport requests are sent over
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Send executes req and returns the normalized response
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	resp, err := Send(ctx, c.transport, req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("url", req.URL),
			zap.String("method", req.Method),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("got response",
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.String("status_message", resp.StatusMessage),
	)
	return resp, nil
}

// Send builds req, issues it on t and collects the response. Errors coming
// from the transport are returned unchanged and no partial response is
// produced. No timeout is applied beyond whatever ctx carries.
func Send(ctx context.Context, t Transport, req *Request) (*Response, error) {
	opts, payload, err := BuildOptions(req)
	if err != nil {
		return nil, err
	}

	out, err := t.Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		if _, err := out.Write(payload); err != nil {
			return nil, err
		}
	}

	in, err := out.End()
	if err != nil {
		return nil, err
	}

	raw, err := readChunks(in.Body)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode:    in.StatusCode,
		StatusMessage: in.StatusMessage,
		Headers:       in.Headers,
		Body:          string(raw),
	}

	if contentType, ok := jsonContentType(in.Headers); ok {
		var body interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, &BodyDecodeError{ContentType: contentType, Err: err}
		}
		resp.Body = body
	}

	return resp, nil
}

// readChunks appends every chunk from body to one buffer, in the order they
// arrive, then closes body.
func readChunks(body io.ReadCloser) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	defer body.Close()

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		n, err := body.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
