package websearch

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; roadmapper/1.0)"

// clientSettings holds the transport settings shared by all providers.
type clientSettings struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxRetries int
	logger     *slog.Logger
}

func defaultSettings(baseURL string) clientSettings {
	return clientSettings{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  DefaultUserAgent,
		maxRetries: defaultMaxRetries,
		logger:     slog.Default(),
	}
}

// Option configures a provider.
type Option func(*clientSettings)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(baseURL string) Option {
	return func(s *clientSettings) {
		s.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *clientSettings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *clientSettings) {
		if timeout > 0 {
			s.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *clientSettings) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithMaxRetries sets how many times a rate-limited request is retried.
func WithMaxRetries(n int) Option {
	return func(s *clientSettings) {
		s.maxRetries = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *clientSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func applyOptions(s clientSettings, opts []Option) clientSettings {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
