package http

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		method       string
		expectedHost string
		expectedPath string
		expectedProt string
		expectedPort string
	}{
		{
			name:         "Simple path",
			url:          "https://host/prod/search",
			method:       "POST",
			expectedHost: "host",
			expectedPath: "/prod/search",
			expectedProt: "https:",
		},
		{
			name:         "Query string is kept",
			url:          "http://api.example.com/users?page=1&limit=10",
			method:       "GET",
			expectedHost: "api.example.com",
			expectedPath: "/users?page=1&limit=10",
			expectedProt: "http:",
		},
		{
			name:         "Empty path defaults to root",
			url:          "https://checkip.amazonaws.com",
			method:       "GET",
			expectedHost: "checkip.amazonaws.com",
			expectedPath: "/",
			expectedProt: "https:",
		},
		{
			name:         "Empty path with query",
			url:          "https://example.com?q=1",
			method:       "GET",
			expectedHost: "example.com",
			expectedPath: "/?q=1",
			expectedProt: "https:",
		},
		{
			name:         "Explicit port",
			url:          "http://localhost:8080/api",
			method:       "GET",
			expectedHost: "localhost",
			expectedPath: "/api",
			expectedProt: "http:",
			expectedPort: "8080",
		},
		{
			name:         "Default https port is dropped",
			url:          "https://example.com:443/a",
			method:       "GET",
			expectedHost: "example.com",
			expectedPath: "/a",
			expectedProt: "https:",
		},
		{
			name:         "Default http port is dropped",
			url:          "http://example.com:80/a",
			method:       "GET",
			expectedHost: "example.com",
			expectedPath: "/a",
			expectedProt: "http:",
		},
		{
			name:         "Fragment is not part of the path",
			url:          "https://example.com/a?b=c#frag",
			method:       "GET",
			expectedHost: "example.com",
			expectedPath: "/a?b=c",
			expectedProt: "https:",
		},
		{
			name:         "IPv6 host",
			url:          "http://[::1]:9000/x",
			method:       "DELETE",
			expectedHost: "::1",
			expectedPath: "/x",
			expectedProt: "http:",
			expectedPort: "9000",
		},
		{
			name:         "Host is lower-cased",
			url:          "https://HOST.Example/Prod/Search",
			method:       "GET",
			expectedHost: "host.example",
			expectedPath: "/Prod/Search",
			expectedProt: "https:",
		},
		{
			name:         "Dot segments are resolved",
			url:          "https://h/a/./b/../c?x=1",
			method:       "GET",
			expectedHost: "h",
			expectedPath: "/a/c?x=1",
			expectedProt: "https:",
		},
		{
			name:         "Leading dot-dot stops at root",
			url:          "https://h/../a",
			method:       "GET",
			expectedHost: "h",
			expectedPath: "/a",
			expectedProt: "https:",
		},
		{
			name:         "Trailing slash and empty segments are kept",
			url:          "https://h/a//b/",
			method:       "GET",
			expectedHost: "h",
			expectedPath: "/a//b/",
			expectedProt: "https:",
		},
		{
			name:         "Escaped path",
			url:          "https://example.com/a%20b/c",
			method:       "GET",
			expectedHost: "example.com",
			expectedPath: "/a%20b/c",
			expectedProt: "https:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{"Accept-Language": "en-US,en;q=0.7,es;q=0.3"}
			req := &Request{URL: tt.url, Method: tt.method, Headers: headers}

			opts, payload, err := BuildOptions(req)
			require.NoError(t, err)

			assert.Nil(t, payload)
			assert.Equal(t, tt.expectedHost, opts.Host)
			assert.Equal(t, tt.expectedPath, opts.Path)
			assert.Equal(t, tt.expectedProt, opts.Protocol)
			assert.Equal(t, tt.expectedPort, opts.Port)
			assert.Equal(t, tt.method, opts.Method)
			assert.Equal(t, headers, opts.Headers)
		})
	}
}

func TestBuildOptions_ContentLengthCountsBytes(t *testing.T) {
	req := &Request{
		URL:    "https://XXX.execute-api.eu-west-1.amazonaws.com/prod/employees/search",
		Method: "POST",
		Body:   map[string]string{"nameSearch": "ŁUKASZ"},
		Headers: map[string]string{
			"Accept-Encoding": "application/json",
			"Accept-Language": "en-US,en;q=0.7,es;q=0.3",
		},
	}

	opts, payload, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Equal(t, `{"nameSearch":"ŁUKASZ"}`, string(payload))

	// Ł takes two bytes, so the byte count is one more than the rune count.
	byteLength, err := strconv.Atoi(opts.Headers["Content-Length"])
	require.NoError(t, err)
	assert.Equal(t, utf8.RuneCount(payload)+1, byteLength)
	assert.Equal(t, len(payload), byteLength)
}

func TestBuildOptions_NoBody(t *testing.T) {
	req := NewRequest("GET", "https://checkip.amazonaws.com/").
		WithHeader("Accept-Encoding", "application/json")

	opts, payload, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Nil(t, payload)
	assert.NotContains(t, opts.Headers, "Content-Length")
	assert.Equal(t, map[string]string{"Accept-Encoding": "application/json"}, opts.Headers)
}

func TestBuildOptions_NilBodiesAreAbsent(t *testing.T) {
	var nilMap map[string]string
	var nilSlice []string
	var nilPointer *struct{ Name string }

	tests := []struct {
		name string
		body interface{}
	}{
		{"Untyped nil", nil},
		{"Nil map", nilMap},
		{"Nil slice", nilSlice},
		{"Nil pointer", nilPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{URL: "https://example.com/", Method: "POST", Body: tt.body}

			opts, payload, err := BuildOptions(req)
			require.NoError(t, err)

			assert.Nil(t, payload)
			assert.NotContains(t, opts.Headers, "Content-Length")
		})
	}
}

func TestBuildOptions_EmptyBodiesAreSent(t *testing.T) {
	tests := []struct {
		body     interface{}
		expected string
	}{
		{map[string]string{}, "{}"},
		{[]string{}, "[]"},
		{"", `""`},
		{0, "0"},
		{false, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			req := &Request{URL: "https://example.com/", Method: "POST", Body: tt.body}

			opts, payload, err := BuildOptions(req)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, string(payload))
			assert.Equal(t, strconv.Itoa(len(tt.expected)), opts.Headers["Content-Length"])
		})
	}
}

func TestBuildOptions_NilHeaders(t *testing.T) {
	req := &Request{
		URL:    "https://checkip.amazonaws.com/",
		Method: "POST",
		Body:   map[string][]string{"this": {"is", "a", "test"}},
	}

	opts, payload, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Equal(t, `{"this":["is","a","test"]}`, string(payload))
	assert.Equal(t, map[string]string{"Content-Length": "26"}, opts.Headers)
}

func TestBuildOptions_DoesNotMutateCallerHeaders(t *testing.T) {
	headers := map[string]string{"Accept": "application/json"}
	req := &Request{URL: "https://example.com/", Method: "POST", Headers: headers, Body: 1}

	opts, _, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Equal(t, "1", opts.Headers["Content-Length"])
	assert.Equal(t, map[string]string{"Accept": "application/json"}, headers)
}

func TestBuildOptions_ContentLengthOverwrite(t *testing.T) {
	req := &Request{
		URL:    "https://example.com/",
		Method: "PUT",
		Body:   "abc",
		Headers: map[string]string{
			"Content-Length": "999",
			"content-length": "999",
		},
	}

	opts, payload, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Equal(t, `"abc"`, string(payload))
	assert.Equal(t, "5", opts.Headers["Content-Length"])
	// Differently cased keys are left alone.
	assert.Equal(t, "999", opts.Headers["content-length"])
}

func TestBuildOptions_NoHTMLEscaping(t *testing.T) {
	req := &Request{
		URL:    "https://example.com/",
		Method: "POST",
		Body:   map[string]string{"q": "a<b && c>d"},
	}

	_, payload, err := BuildOptions(req)
	require.NoError(t, err)

	assert.Equal(t, `{"q":"a<b && c>d"}`, string(payload))
}

func TestBuildOptions_MalformedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"Relative", "/prod/search"},
		{"Empty", ""},
		{"Bad escape", "https://example.com/%zz"},
		{"Bad port", "http://example.com:port/"},
		{"Control character", "https://example.com/\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, payload, err := BuildOptions(&Request{URL: tt.url, Method: "GET"})

			require.Error(t, err)
			assert.Nil(t, opts)
			assert.Nil(t, payload)
			assert.True(t, errors.Is(err, ErrMalformedURL))

			var malformed *MalformedURLError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.url, malformed.URL)
		})
	}
}

func TestBuildOptions_MalformedURLWrapsParseError(t *testing.T) {
	_, _, err := BuildOptions(&Request{URL: "http://example.com:port/", Method: "GET"})

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
}

func TestBuildOptions_UnserializableBody(t *testing.T) {
	_, _, err := BuildOptions(&Request{
		URL:    "https://example.com/",
		Method: "POST",
		Body:   map[string]interface{}{"ch": make(chan int)},
	})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedURL))
}

func TestOptions_URL(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://host/prod/search", "https://host/prod/search"},
		{"http://localhost:8080/api?x=1", "http://localhost:8080/api?x=1"},
		{"http://[::1]:9000/x", "http://[::1]:9000/x"},
		{"https://example.com", "https://example.com/"},
		{"https://API.Example.com/v1/../v2", "https://api.example.com/v2"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			opts, _, err := BuildOptions(&Request{URL: tt.raw, Method: "GET"})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, opts.URL())
		})
	}
}

func TestRequest_WithMethods(t *testing.T) {
	req := NewRequest("POST", "https://example.com/")
	req.WithHeader("X-Test", "test-value").WithBody(map[string]string{"name": "John"})

	assert.Equal(t, "test-value", req.Headers["X-Test"])
	assert.Equal(t, map[string]string{"name": "John"}, req.Body)

	empty := &Request{}
	empty.WithHeader("A", "b")
	assert.Equal(t, "b", empty.Headers["A"])
}
