// Package cfg evaluates #[cfg(...)] attributes to decide whether an item is
// included in the compiled output for a given set of compile options.
//
// Evaluation is total: every attribute and term shape maps to a boolean.
// Unrecognized identifiers, keys and functions evaluate to false, while an
// empty cfg() list is an unconditional pass.
package cfg

import "github.com/dream-lang/dream-go/ast"

// Options is the read-only view of the compile options a predicate is
// evaluated against.
type Options interface {
	TestMode() bool
	HasFeature(name string) bool
}

// ShouldInclude reports whether an item carrying attrs survives compilation.
// Every cfg attribute must hold; attributes with other names are ignored.
func ShouldInclude(attrs []ast.Attribute, opts Options) bool {
	for _, attr := range attrs {
		if attr.Name == "cfg" && !EvaluateAttribute(attr, opts) {
			return false
		}
	}
	return true
}

// IsTest reports whether the item has a #[test] attribute.
func IsTest(attrs []ast.Attribute) bool {
	for _, attr := range attrs {
		if attr.Name == "test" {
			return true
		}
	}
	return false
}

// IsCfgTest reports whether the item is gated by exactly #[cfg(test)].
// It is a syntactic match and does not consult compile options.
func IsCfgTest(attrs []ast.Attribute) bool {
	for _, attr := range attrs {
		if attr.Name != "cfg" {
			continue
		}
		args, ok := attr.Args.(ast.ParenArgs)
		if !ok || len(args.Terms) != 1 {
			continue
		}
		if ident, ok := args.Terms[0].(ast.Ident); ok && ident.Name == "test" {
			return true
		}
	}
	return false
}

// EvaluateAttribute evaluates a single cfg attribute. Top-level terms are
// conjoined. Bare #[cfg] and #[cfg = "..."] are not valid cfg syntax and
// are treated as true.
func EvaluateAttribute(attr ast.Attribute, opts Options) bool {
	args, ok := attr.Args.(ast.ParenArgs)
	if !ok {
		return true
	}
	return allOf(args.Terms, opts)
}

// EvaluateTerm evaluates one predicate term.
func EvaluateTerm(term ast.Term, opts Options) bool {
	switch t := term.(type) {
	case ast.Ident:
		if t.Name == "test" {
			return opts.TestMode()
		}
		return false
	case ast.KeyValue:
		if t.Key == "feature" {
			return opts.HasFeature(t.Value)
		}
		return false
	case ast.Nested:
		switch t.Name {
		case "not":
			if len(t.Args) != 1 {
				return false
			}
			return !EvaluateTerm(t.Args[0], opts)
		case "all":
			return allOf(t.Args, opts)
		case "any":
			return anyOf(t.Args, opts)
		default:
			return false
		}
	default:
		return false
	}
}

func allOf(terms []ast.Term, opts Options) bool {
	for _, t := range terms {
		if !EvaluateTerm(t, opts) {
			return false
		}
	}
	return true
}

func anyOf(terms []ast.Term, opts Options) bool {
	for _, t := range terms {
		if EvaluateTerm(t, opts) {
			return true
		}
	}
	return false
}
