package http

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Request describes a single outbound HTTP request
type Request struct {
	URL     string
	Method  string
	Headers map[string]string

	// Body is sent as JSON. nil, or a nil map, slice or pointer, means the
	// request has no body.
	Body interface{}
}

// NewRequest creates a new request descriptor
func NewRequest(method, rawURL string) *Request {
	return &Request{
		URL:     rawURL,
		Method:  method,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request
func (r *Request) WithHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// WithBody sets the value that is sent as the JSON request body
func (r *Request) WithBody(body interface{}) *Request {
	r.Body = body
	return r
}

// Options holds everything a Transport needs to open a request
type Options struct {
	Host     string
	Path     string
	Protocol string
	Port     string
	Method   string
	Headers  map[string]string
}

// Address returns host[:port] as used on the wire.
func (o *Options) Address() string {
	host := o.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if o.Port == "" {
		return host
	}
	return host + ":" + o.Port
}

// URL reassembles the absolute URL the options point at
func (o *Options) URL() string {
	return o.Protocol + "//" + o.Address() + o.Path
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// BuildOptions derives transport options and the serialized payload from a
// request. The payload is nil when the request has no body. Headers are
// copied, the caller's map is left untouched.
func BuildOptions(req *Request) (*Options, []byte, error) {
	headers := make(map[string]string, len(req.Headers)+1)
	for key, value := range req.Headers {
		headers[key] = value
	}

	var payload []byte
	if !absent(req.Body) {
		data, err := marshalBody(req.Body)
		if err != nil {
			return nil, nil, err
		}
		payload = data
		// Only this exact key is overwritten; "content-length" survives.
		headers["Content-Length"] = strconv.Itoa(len(payload))
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, nil, &MalformedURLError{URL: req.URL, Err: err}
	}
	if !u.IsAbs() {
		return nil, nil, &MalformedURLError{URL: req.URL}
	}
	// Resolving u against itself removes "." and ".." path segments.
	u = u.ResolveReference(u)

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	port := u.Port()
	if port == defaultPorts[u.Scheme] {
		port = ""
	}

	return &Options{
		Host:     strings.ToLower(u.Hostname()),
		Path:     path,
		Protocol: u.Scheme + ":",
		Port:     port,
		Method:   req.Method,
		Headers:  headers,
	}, payload, nil
}

// absent reports whether body stands for no body at all.
func absent(body interface{}) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// marshalBody encodes v as compact JSON, leaving <, > and & unescaped.
func marshalBody(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
