// Package article turns an article URL into the readable body text that the
// transform endpoints accept as articleText.
package article

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const maxPageBytes = 10 * 1024 * 1024

// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("article url must be an absolute http or https URL")

// ErrNoContent is returned when a page yields no readable text.
var ErrNoContent = errors.New("no readable content found")

// ErrBlockedAddress is returned when a page resolves to an address that is
// not publicly routable.
var ErrBlockedAddress = errors.New("article address is not publicly routable")

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Newsdesk/1.0; +https://github.com/hoanghai1803/newsdesk)")
}

// Extracted is the readable content of a fetched page.
type Extracted struct {
	Title       string
	SiteName    string
	Excerpt     string
	TextContent string
	PublishedAt *time.Time
}

// Extractor fetches pages and runs them through go-readability.
type Extractor struct {
	httpClient *http.Client
}

type extractorOptions struct {
	control func(network, address string, c syscall.RawConn) error
}

// Option configures an Extractor.
type Option func(*extractorOptions)

// AllowPrivateNetworks disables the public-address check. Only tests and
// trusted deployments should use it.
func AllowPrivateNetworks() Option {
	return func(o *extractorOptions) { o.control = nil }
}

// NewExtractor returns an Extractor whose page fetches time out after timeout.
// Every connection, including redirects, is refused unless the resolved
// address is publicly routable.
func NewExtractor(timeout time.Duration, opts ...Option) *Extractor {
	o := extractorOptions{control: checkPublicAddress}
	for _, opt := range opts {
		opt(&o)
	}

	return &Extractor{httpClient: &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
				Control:   o.control,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          50,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   20 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}}
}

// Extract returns the readable text of the page at rawURL.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	page, err := e.ExtractPage(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return page.TextContent, nil
}

// ExtractPage fetches rawURL and returns its title, excerpt and body text.
func (e *Extractor) ExtractPage(ctx context.Context, rawURL string) (*Extracted, error) {
	pageURL, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	browserHeaders(req)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching article: unexpected status code: %d", resp.StatusCode)
	}

	parsed, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return nil, ErrNoContent
	}

	return &Extracted{
		Title:       parsed.Title,
		SiteName:    parsed.SiteName,
		Excerpt:     parsed.Excerpt,
		TextContent: text,
		PublishedAt: parsed.PublishedTime,
	}, nil
}

// checkPublicAddress runs after DNS resolution and rejects loopback, private,
// link-local, multicast and unspecified addresses.
func checkPublicAddress(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	addr = addr.Unmap()

	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() || addr.IsMulticast() ||
		sharedAddressSpace.Contains(addr) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, addr)
	}
	return nil
}

// ParseURL accepts only absolute http and https URLs.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}
