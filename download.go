// HTTP downloader used by the package resolver.
//
// One attempt, synchronous, no retries: a failed transfer is a final
// failure for that call. Proxy configuration comes from the environment
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY); the only timeout behavior is the
// client's own.
package vellum

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Version of the vellum module, reported in the downloader user agent.
const Version = "0.4.0"

const defaultUserAgent = "vellum/" + Version

// Downloader fetches URLs on behalf of the package resolver.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a downloader with the given user agent. An empty
// agent falls back to the module default.
func NewDownloader(userAgent string) *Downloader {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Downloader{
		client: &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
			Timeout:   60 * time.Second,
		},
		userAgent: userAgent,
	}
}

// statusError reports a non-success HTTP status. The resolver maps 404
// onto ErrPackageNotFound and everything else onto ErrNetworkFailed.
type statusError int

func (e statusError) Error() string {
	return fmt.Sprintf("server responded with %d %s", int(e), http.StatusText(int(e)))
}

// Get fetches url and returns the full response body.
func (d *Downloader) Get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
