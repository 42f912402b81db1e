// Package network holds the HTTP clients shared by selectors and speech synthesis.
package network

import (
	"net/http"
	"time"

	"github.com/djecho/djecho/constant"
)

// Client is the shared HTTP client. Requests it sends carry the djecho user agent.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return t.base.RoundTrip(req)
}
