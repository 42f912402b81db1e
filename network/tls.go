package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// Some radio directories and track hosts reject the default Go TLS handshake.
// The TLS client below presents a Chrome 120 ClientHello through utls, trying
// HTTP/2 first and falling back to HTTP/1.1.

const tlsTimeout = 30 * time.Second

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		}
	})
	return h2Transport
}

var h1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, network, addr, []string{"http/1.1"})
	},
}

// Response is the result of a fingerprinted request.
type Response struct {
	Status int
	Body   string
}

// DoTLS sends a request with a browser TLS fingerprint.
func DoTLS(ctx context.Context, method, rawURL string, headers map[string]string, body string) (Response, error) {
	newRequest := func() (*http.Request, error) {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept", "*/*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	}

	req, err := newRequest()
	if err != nil {
		return Response{}, err
	}

	resp, err := (&http.Client{Timeout: tlsTimeout, Transport: getH2Transport()}).Do(req)
	if err != nil {
		if req, err = newRequest(); err != nil {
			return Response{}, err
		}

		resp, err = (&http.Client{Timeout: tlsTimeout, Transport: h1Transport}).Do(req)
		if err != nil {
			return Response{}, fmt.Errorf("request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("read body: %w", err)
	}

	return Response{Status: resp.StatusCode, Body: string(data)}, nil
}

// dialTLS opens a connection with a Chrome 120 fingerprint. A nil protos keeps
// the fingerprint's own ALPN list (h2 and http/1.1).
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: tlsTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
