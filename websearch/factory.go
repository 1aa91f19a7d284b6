package websearch

import (
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderBrave      = "brave"
	ProviderNone       = "none"
)

// New builds the named provider. "none" returns a nil provider, which
// disables web fallback.
func New(name, apiKey string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderDuckDuckGo:
		return NewDuckDuckGo(opts...), nil
	case ProviderBrave:
		b, err := NewBrave(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
