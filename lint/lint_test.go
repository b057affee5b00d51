package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dream-lang/dream-go/ast"
)

func TestLintCleanAttributes(t *testing.T) {
	attrs := parseAttrs(t, `#[test] #[cfg(all(test, not(feature = "json"), any(feature = "a")))]`)
	assert.Empty(t, LintAttributes(attrs, "clean.dream", DefaultOptions()))
}

func TestLintDetectsUnknownShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"unknown predicate", `#[cfg(bogus)]`, CodeUnknownPredicate},
		{"unknown key", `#[cfg(weird = "x")]`, CodeUnknownKey},
		{"unknown function", `#[cfg(maybe(test))]`, CodeUnknownFunction},
		{"not without args", `#[cfg(not())]`, CodeNotArity},
		{"not with two args", `#[cfg(not(test, test))]`, CodeNotArity},
		{"empty any", `#[cfg(any())]`, CodeEmptyAny},
		{"nested unknown", `#[cfg(all(test, any(linux)))]`, CodeUnknownPredicate},
		{"bare cfg", `#[cfg]`, CodeMalformedCfg},
		{"eq cfg", `#[cfg = "test"]`, CodeMalformedCfg},
		{"empty cfg", `#[cfg()]`, CodeEmptyCfg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := LintAttributes(parseAttrs(t, tt.src), "test.dream", DefaultOptions())
			assert.True(t, hasIssue(issues, tt.code), "issues: %v", issues)
		})
	}
}

func TestLintIgnoresOtherAttributes(t *testing.T) {
	attrs := parseAttrs(t, `#[doc = "x"] #[inline] #[derive(bogus)]`)
	assert.Empty(t, LintAttributes(attrs, "test.dream", DefaultOptions()))
}

func TestLintMalformedModes(t *testing.T) {
	attrs := parseAttrs(t, `#[cfg(bogus)]`)

	issues := LintAttributes(attrs, "test.dream", LintOptions{MalformedMode: MalformedError})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.True(t, HasErrors(issues))

	issues = LintAttributes(attrs, "test.dream", LintOptions{MalformedMode: MalformedWarn})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.False(t, HasErrors(issues))

	assert.Empty(t, LintAttributes(attrs, "test.dream", LintOptions{MalformedMode: MalformedIgnore}))

	issues = LintAttributes(attrs, "test.dream", LintOptions{MalformedMode: "bogus"})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}

func TestParseMalformedMode(t *testing.T) {
	tests := map[string]MalformedMode{
		"":        MalformedWarn,
		"warning": MalformedWarn,
		" ERROR ": MalformedError,
		"off":     MalformedIgnore,
	}
	for raw, want := range tests {
		got, err := ParseMalformedMode(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMalformedMode("loud")
	assert.Error(t, err)
}

func TestLintItemsReportsPosition(t *testing.T) {
	items, err := ast.ParseItems("items.dream", "fn main\n\n#[cfg(linux)]\nfn only_linux\n")
	require.NoError(t, err)

	issues := LintItems(items, "items.dream", DefaultOptions())
	require.Len(t, issues, 1)
	assert.Equal(t, CodeUnknownPredicate, issues[0].Code)
	assert.Equal(t, 3, issues[0].Span.Line)
	assert.Equal(t, `items.dream:3:1: warning [unknown-predicate] unknown cfg predicate "linux" is always false`, issues[0].String())
}

func parseAttrs(t *testing.T, src string) []ast.Attribute {
	t.Helper()
	attrs, err := ast.ParseAttributes("test.dream", src)
	require.NoError(t, err)
	return attrs
}

func hasIssue(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
