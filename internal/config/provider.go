package config

import "strings"

// Provider resolves gateway settings from a nested mapping using dotted keys
// (e.g. "credentials.stk.short_code"). A missing or non-traversable segment
// yields the supplied default; absence is a normal state that callers validate
// explicitly.
type Provider struct {
	values map[string]any
}

// NewProvider creates a Provider over the given nested mapping.
func NewProvider(values map[string]any) *Provider {
	if values == nil {
		values = map[string]any{}
	}
	return &Provider{values: values}
}

// Get returns the value at the dotted key, or def when any path segment is
// absent or not a nested mapping.
func (p *Provider) Get(key string, def any) any {
	var current any = p.values
	for _, segment := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return def
		}
		current, ok = m[segment]
		if !ok {
			return def
		}
	}
	return current
}

// GetString returns the string at the dotted key, or def when the key is
// absent or holds a non-string value.
func (p *Provider) GetString(key, def string) string {
	if s, ok := p.Get(key, def).(string); ok {
		return s
	}
	return def
}

// GetBool returns the bool at the dotted key, or def when the key is absent
// or holds a non-bool value.
func (p *Provider) GetBool(key string, def bool) bool {
	if b, ok := p.Get(key, def).(bool); ok {
		return b
	}
	return def
}

// GetStrings returns the string slice at the dotted key, or nil when the key
// is absent or holds another type.
func (p *Provider) GetStrings(key string) []string {
	if s, ok := p.Get(key, []string(nil)).([]string); ok {
		return s
	}
	return nil
}
