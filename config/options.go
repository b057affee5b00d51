package config

import "sort"

// CompileOptions is the frozen set of compile-time toggles cfg predicates are
// evaluated against. A value is never mutated after construction; the
// Set/Enable/Disable methods return modified copies.
type CompileOptions struct {
	testMode bool
	features map[string]struct{}
}

// New returns options with test mode off and no features enabled.
func New() CompileOptions {
	return CompileOptions{}
}

// ForTesting returns options with test mode on and no features enabled.
func ForTesting() CompileOptions {
	return CompileOptions{testMode: true}
}

// WithFeatures returns options with the given features enabled.
func WithFeatures(names ...string) CompileOptions {
	return CompileOptions{features: featureSet(names)}
}

// ForTestingWithFeatures returns options in test mode with the given features enabled.
func ForTestingWithFeatures(names ...string) CompileOptions {
	return CompileOptions{testMode: true, features: featureSet(names)}
}

func featureSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// TestMode reports whether the compilation runs in test mode.
func (o CompileOptions) TestMode() bool {
	return o.testMode
}

// HasFeature reports whether name is enabled. Matching is exact and case-sensitive.
func (o CompileOptions) HasFeature(name string) bool {
	_, ok := o.features[name]
	return ok
}

// Features returns the enabled feature names in sorted order.
func (o CompileOptions) Features() []string {
	names := make([]string, 0, len(o.features))
	for name := range o.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetTestMode returns a copy of o with test mode set to enabled.
func (o CompileOptions) SetTestMode(enabled bool) CompileOptions {
	return CompileOptions{testMode: enabled, features: o.features}
}

// EnableFeature returns a copy of o with name enabled.
func (o CompileOptions) EnableFeature(name string) CompileOptions {
	if o.HasFeature(name) {
		return o
	}
	features := o.cloneFeatures()
	features[name] = struct{}{}
	return CompileOptions{testMode: o.testMode, features: features}
}

// DisableFeature returns a copy of o with name disabled.
func (o CompileOptions) DisableFeature(name string) CompileOptions {
	if !o.HasFeature(name) {
		return o
	}
	features := o.cloneFeatures()
	delete(features, name)
	return CompileOptions{testMode: o.testMode, features: features}
}

func (o CompileOptions) cloneFeatures() map[string]struct{} {
	features := make(map[string]struct{}, len(o.features)+1)
	for name := range o.features {
		features[name] = struct{}{}
	}
	return features
}
