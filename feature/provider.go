// Package feature provides a minimal flag-rollout surface: a static,
// environment-seeded provider keyed by flag name.
package feature

import (
	"context"
	"strconv"
)

// Provider answers whether a named flag is enabled.
type Provider interface {
	IsEnabled(ctx context.Context, flag string) (bool, error)
}

// StaticProvider serves a fixed map of flag states, typically loaded once
// from configuration at process start.
type StaticProvider struct {
	flags map[string]bool
}

// NewStaticProvider builds a Provider from a name->enabled map.
func NewStaticProvider(flags map[string]bool) *StaticProvider {
	if flags == nil {
		flags = map[string]bool{}
	}
	return &StaticProvider{flags: flags}
}

// NewStaticProviderFromEnv builds a Provider from FEATURE_<FLAG>=true/false
// style env values already parsed into a string map (e.g. by caarlos0/env).
func NewStaticProviderFromEnv(raw map[string]string) *StaticProvider {
	flags := make(map[string]bool, len(raw))
	for k, v := range raw {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			continue
		}
		flags[k] = enabled
	}
	return &StaticProvider{flags: flags}
}

// IsEnabled reports the flag's static value. An unknown flag name is
// ErrFlagNotFound, not a silent false, so callers can distinguish
// "off" from "not configured".
func (p *StaticProvider) IsEnabled(_ context.Context, flag string) (bool, error) {
	if flag == "" {
		return false, ErrInvalidFlag
	}
	enabled, ok := p.flags[flag]
	if !ok {
		return false, ErrFlagNotFound
	}
	return enabled, nil
}
