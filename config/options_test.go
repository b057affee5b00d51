package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.False(t, New().TestMode())
	assert.Empty(t, New().Features())

	assert.True(t, ForTesting().TestMode())
	assert.Empty(t, ForTesting().Features())

	opts := WithFeatures("json", "async", "json")
	assert.False(t, opts.TestMode())
	assert.Equal(t, []string{"async", "json"}, opts.Features())

	opts = ForTestingWithFeatures("json")
	assert.True(t, opts.TestMode())
	assert.True(t, opts.HasFeature("json"))
}

func TestHasFeatureExactMatch(t *testing.T) {
	opts := WithFeatures("json")
	assert.True(t, opts.HasFeature("json"))
	assert.False(t, opts.HasFeature("JSON"))
	assert.False(t, opts.HasFeature("json "))
	assert.False(t, opts.HasFeature(""))
}

func TestDerivationsDoNotMutate(t *testing.T) {
	base := WithFeatures("json")

	enabled := base.EnableFeature("yaml")
	assert.True(t, enabled.HasFeature("yaml"))
	assert.False(t, base.HasFeature("yaml"))

	disabled := enabled.DisableFeature("json")
	assert.False(t, disabled.HasFeature("json"))
	assert.True(t, enabled.HasFeature("json"))
	assert.True(t, base.HasFeature("json"))

	inTest := base.SetTestMode(true)
	assert.True(t, inTest.TestMode())
	assert.False(t, base.TestMode())
	assert.Equal(t, base.Features(), inTest.Features())
}

func TestDerivationsNoop(t *testing.T) {
	base := WithFeatures("json")
	assert.Equal(t, base.Features(), base.EnableFeature("json").Features())
	assert.Equal(t, base.Features(), base.DisableFeature("yaml").Features())

	var zero CompileOptions
	assert.False(t, zero.HasFeature("json"))
	assert.Equal(t, []string{"json"}, zero.EnableFeature("json").Features())
}
