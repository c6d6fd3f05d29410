package webapi

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Transport performs the actual HTTP exchange. It owns connection pooling,
// TLS, cookies and any retry policy; the client only builds requests and
// interprets responses.
type Transport interface {
	Send(ctx context.Context, method, uri string, header http.Header, body string) (*TransportResponse, error)
}

// TransportResponse is the raw outcome of one exchange.
type TransportResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	// Success is true for 2xx and 3xx statuses.
	Success bool
}

// Middleware wraps the underlying round trip for cross-cutting concerns.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// httpTransport is the default Transport backed by net/http. The cookie jar
// persists session state across calls.
type httpTransport struct {
	client     *http.Client
	middleware []Middleware
}

func newHTTPTransport(client *http.Client, middleware []Middleware) *httpTransport {
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		}
	}
	if client.Jar == nil {
		if jar, err := cookiejar.New(nil); err == nil {
			client.Jar = jar
		}
	}
	return &httpTransport{client: client, middleware: middleware}
}

// Send builds the request, runs it through the middleware chain and drains
// the response body.
func (t *httpTransport) Send(ctx context.Context, method, uri string, header http.Header, body string) (*TransportResponse, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.execute(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       raw,
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 400,
	}, nil
}

// execute runs the middleware chain with the HTTP client as the final hop.
func (t *httpTransport) execute(req *http.Request) (*http.Response, error) {
	final := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return t.client.Do(r)
	})

	var next RoundTripper = final
	for i := len(t.middleware) - 1; i >= 0; i-- {
		middleware := t.middleware[i]
		current := next
		next = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, current)
		})
	}

	return next.RoundTrip(req)
}
