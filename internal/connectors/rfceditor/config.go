package rfceditor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// NumberPlaceholder is replaced by the RFC number in Config.DocumentURL.
const NumberPlaceholder = "{number}"

// Config holds the settings for a Client.
type Config struct {
	// IndexURL is the location of rfc-index.txt.
	IndexURL string

	// DocumentURL is a template containing NumberPlaceholder.
	DocumentURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64

	// Retries is the number of attempts per request, including the first.
	Retries int
}

// ConfigFromSettings converts application settings into a Config.
func ConfigFromSettings(s domain.RemoteSettings) Config {
	return Config{
		IndexURL:          s.IndexURL,
		DocumentURL:       s.DocumentURL,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
		Retries:           s.Retries,
	}
}

// DefaultConfig returns the configuration for the public RFC Editor.
func DefaultConfig() Config {
	return ConfigFromSettings(domain.DefaultSettings().Remote)
}

// Validate checks the URLs and fills zero values with defaults.
func (c *Config) Validate() error {
	defaults := DefaultConfig()

	if c.IndexURL == "" {
		c.IndexURL = defaults.IndexURL
	}
	if c.DocumentURL == "" {
		c.DocumentURL = defaults.DocumentURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if c.Retries <= 0 {
		c.Retries = defaults.Retries
	}

	if err := validateURL(c.IndexURL); err != nil {
		return fmt.Errorf("%w: index url: %v", ErrInvalidConfig, err)
	}
	if !strings.Contains(c.DocumentURL, NumberPlaceholder) {
		return fmt.Errorf("%w: document url %q has no %s placeholder", ErrInvalidConfig, c.DocumentURL, NumberPlaceholder)
	}
	if err := validateURL(c.DocumentLocator(1)); err != nil {
		return fmt.Errorf("%w: document url: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DocumentLocator returns the URL of RFC number.
func (c Config) DocumentLocator(number int) string {
	return strings.ReplaceAll(c.DocumentURL, NumberPlaceholder, strconv.Itoa(number))
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
