package shopify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAPIVersion = "2024-07"
	DefaultTimeout    = 10 * time.Second
)

var (
	ErrMissingStoreDomain = errors.New("store domain is empty")
	ErrMissingAccessToken = errors.New("storefront access token is empty")
)

type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	// RateLimit is the outbound requests per second, 0 disables limiting.
	RateLimit float64
	RateBurst int
}

func (c Config) Validate() error {
	var errs []error
	if NormalizeDomain(c.StoreDomain) == "" {
		errs = append(errs, ErrMissingStoreDomain)
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		errs = append(errs, ErrMissingAccessToken)
	}
	return errors.Join(errs...)
}

// Endpoint is the Storefront GraphQL URL for the configured shop and API version.
func (c Config) Endpoint() string {
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf("https://%s/api/%s/graphql.json", NormalizeDomain(c.StoreDomain), version)
}

// NormalizeDomain strips the scheme and any path, so both "shop.myshopify.com"
// and "https://shop.myshopify.com/" are accepted.
func NormalizeDomain(raw string) string {
	d := strings.TrimSpace(raw)
	lower := strings.ToLower(d)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			d = d[len(scheme):]
			break
		}
	}
	host, _, _ := strings.Cut(d, "/")
	return host
}
