package lint

import (
	"fmt"
	"strings"

	"github.com/dream-lang/dream-go/ast"
)

const (
	SeverityWarning = "warning"
	SeverityError   = "error"

	CodeUnknownPredicate = "unknown-predicate"
	CodeUnknownKey       = "unknown-key"
	CodeUnknownFunction  = "unknown-function"
	CodeNotArity         = "not-arity"
	CodeEmptyAny         = "empty-any"
	CodeMalformedCfg     = "malformed-cfg"
	CodeEmptyCfg         = "empty-cfg"
)

// MalformedMode controls how cfg shapes that silently evaluate to false are reported.
type MalformedMode string

const (
	MalformedIgnore MalformedMode = "ignore"
	MalformedWarn   MalformedMode = "warn"
	MalformedError  MalformedMode = "error"
)

// LintOptions configures lint behavior.
type LintOptions struct {
	MalformedMode MalformedMode
}

// DefaultOptions returns the default lint options.
func DefaultOptions() LintOptions {
	return LintOptions{MalformedMode: MalformedWarn}
}

// ParseMalformedMode parses a string into MalformedMode.
func ParseMalformedMode(raw string) (MalformedMode, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	switch trimmed {
	case "", "warn", "warning":
		return MalformedWarn, nil
	case "error", "err":
		return MalformedError, nil
	case "ignore", "off", "none":
		return MalformedIgnore, nil
	default:
		return MalformedWarn, fmt.Errorf("unknown malformed mode: %s", raw)
	}
}

// Issue represents a linter finding.
type Issue struct {
	File     string
	Span     ast.Span
	Severity string
	Code     string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d:%d: %s [%s] %s", i.File, i.Span.Line, i.Span.Column, i.Severity, i.Code, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// LintItems runs lint checks over every item's attributes.
func LintItems(items []ast.Item, path string, options LintOptions) []Issue {
	issues := make([]Issue, 0)
	for _, item := range items {
		issues = append(issues, LintAttributes(item.Attrs, path, options)...)
	}
	return issues
}

// LintAttributes checks the cfg attributes in attrs. Findings never change
// how the attributes evaluate.
func LintAttributes(attrs []ast.Attribute, path string, options LintOptions) []Issue {
	mode := normalizeMalformedMode(options.MalformedMode)
	if mode == MalformedIgnore {
		return nil
	}

	l := &linter{path: path, severity: severityFor(mode)}
	for _, attr := range attrs {
		if attr.Name != "cfg" {
			continue
		}
		l.span = attr.Span
		switch args := attr.Args.(type) {
		case ast.ParenArgs:
			if len(args.Terms) == 0 {
				l.report(SeverityWarning, CodeEmptyCfg, "cfg() has no conditions and always includes the item")
				continue
			}
			for _, term := range args.Terms {
				l.term(term)
			}
		default:
			l.report(SeverityWarning, CodeMalformedCfg,
				fmt.Sprintf("%s is not a cfg predicate list and always includes the item", attr))
		}
	}
	return l.issues
}

type linter struct {
	path     string
	span     ast.Span
	severity string
	issues   []Issue
}

func (l *linter) report(severity, code, message string) {
	l.issues = append(l.issues, Issue{
		File:     l.path,
		Span:     l.span,
		Severity: severity,
		Code:     code,
		Message:  message,
	})
}

func (l *linter) term(term ast.Term) {
	switch t := term.(type) {
	case ast.Ident:
		if t.Name != "test" {
			l.report(l.severity, CodeUnknownPredicate,
				fmt.Sprintf("unknown cfg predicate %q is always false", t.Name))
		}
	case ast.KeyValue:
		if t.Key != "feature" {
			l.report(l.severity, CodeUnknownKey,
				fmt.Sprintf("unknown cfg key %q is always false", t.Key))
		}
	case ast.Nested:
		switch t.Name {
		case "not":
			if len(t.Args) != 1 {
				l.report(l.severity, CodeNotArity,
					fmt.Sprintf("not() takes exactly one condition, got %d; always false", len(t.Args)))
				return
			}
		case "all":
		case "any":
			if len(t.Args) == 0 {
				l.report(l.severity, CodeEmptyAny, "any() with no conditions is always false")
				return
			}
		default:
			l.report(l.severity, CodeUnknownFunction,
				fmt.Sprintf("unknown cfg function %q is always false", t.Name))
			return
		}
		for _, arg := range t.Args {
			l.term(arg)
		}
	}
}

func normalizeMalformedMode(mode MalformedMode) MalformedMode {
	switch mode {
	case MalformedIgnore, MalformedWarn, MalformedError:
		return mode
	default:
		return MalformedWarn
	}
}

func severityFor(mode MalformedMode) string {
	if mode == MalformedError {
		return SeverityError
	}
	return SeverityWarning
}
