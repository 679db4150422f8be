package ledger

import (
	"context"
	"fmt"
)

// DefaultPlaces is the number of decimal places balances are rounded to
// when none is configured.
const DefaultPlaces = 2

// Config holds the settings of an assertion run.
type Config struct {
	// Places is the number of decimal places the computed balance is
	// rounded to before it is compared with the asserted value.
	Places int32

	// Pattern selects assertion transactions by description and yields
	// the asserted amount.
	Pattern string
}

// NewConfig creates a Config with default settings.
func NewConfig(pattern string) *Config {
	return &Config{
		Places:  DefaultPlaces,
		Pattern: pattern,
	}
}

// Validate reports settings that cannot produce a meaningful run.
func (c *Config) Validate() error {
	if c.Places < 0 {
		return fmt.Errorf("invalid number of decimal places %d: must not be negative", c.Places)
	}
	if c.Pattern == "" {
		return fmt.Errorf("assertion pattern must not be empty")
	}
	return nil
}

type contextKey struct{}

// WithContext returns a new context with the Config attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ConfigFromContext retrieves the Config from context, or nil.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
