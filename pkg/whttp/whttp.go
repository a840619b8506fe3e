package whttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Per-request budget: every call either completes or times out within this
// window. Failed calls are handled by the caller, never replayed here.
const DEFAULT_TIMEOUT = 30 * time.Second

type WHTTPHeader struct {
	Name  string
	Value string
}

type WHTTPReq struct {
	URL     string
	Method  string
	Body    string
	Headers []WHTTPHeader
}

type WHTTPRes struct {
	StatusCode     int
	ResponseLength int
	BodyString     string
	Headers        http.Header
}

var defaultClient = newClient()

func newClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = stdlog.New(io.Discard, "", 0)
	client.HTTPClient.Timeout = DEFAULT_TIMEOUT
	return client
}

// GetDefaultClient returns the shared client used when SendHTTPRequest is
// called with a nil client.
func GetDefaultClient() *retryablehttp.Client {
	return defaultClient
}

// SetupProxy routes the default client through an HTTP proxy. Certificate
// checks are disabled so intercepting proxies work out of the box.
func SetupProxy(proxy string) error {
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %v", err)
	}

	defaultClient.HTTPClient.Transport = &http.Transport{
		Proxy:           http.ProxyURL(proxyURL),
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	return nil
}

func SendHTTPRequest(ctx context.Context, wReq *WHTTPReq, client *retryablehttp.Client) (wRes *WHTTPRes, err error) {
	var rawBody interface{}
	if wReq.Body != "" {
		rawBody = []byte(wReq.Body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, wReq.Method, wReq.URL, rawBody)
	if err != nil {
		return nil, err
	}

	for _, h := range wReq.Headers {
		req.Header.Set(h.Name, h.Value)
	}

	if client == nil {
		client = defaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	wRes = &WHTTPRes{
		StatusCode:     resp.StatusCode,
		ResponseLength: len(bodyBytes),
		BodyString:     string(bodyBytes),
		Headers:        resp.Header,
	}

	return wRes, nil
}
