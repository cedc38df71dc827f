package policy

import (
	"context"
	"fmt"
	"strings"
)

// Overtime modes.
const (
	ModeAllow = "allow" // lift ceilings once the pool is saturated (default)
	ModeClip  = "clip"  // never exceed calendar capacity; report a shortfall
)

// Policy decides which resources may be assigned hours beyond their
// calendar capacity.
//
//   - Mode selects the default behaviour (allow / clip).
//   - AllowList names resources allowed overtime under clip.
//   - BlockList names resources never allowed overtime; it wins over AllowList.
//
// A nil *Policy allows overtime for everyone.
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
}

// Config represents the serialisable form of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Validate checks the mode.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch strings.ToLower(c.Mode) {
	case "", ModeAllow, ModeClip:
		return nil
	}
	return fmt.Errorf("unsupported overtime mode: %q", c.Mode)
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config into a Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// AllowsOvertime reports whether resourceID may exceed its daily capacity.
// Resource ids are compared case-insensitively.
func (p *Policy) AllowsOvertime(resourceID string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(resourceID)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if !strings.EqualFold(p.Mode, ModeClip) {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx, overriding the service policy for one call.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy embedded in ctx or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
