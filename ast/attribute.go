package ast

import (
	"strconv"
	"strings"
)

// Span locates an attribute in its source file. It is used for
// diagnostics only and never influences evaluation.
type Span struct {
	Start  int // byte offset of the first token
	End    int // byte offset just past the last token
	Line   int
	Column int
}

// Attribute is a named annotation attached to an item, e.g. #[cfg(test)].
type Attribute struct {
	Name string
	Args Args
	Span Span
}

// Args is the argument payload of an attribute: NoArgs, EqArgs or ParenArgs.
type Args interface {
	args()
}

// NoArgs is the payload of a bare attribute such as #[test].
type NoArgs struct{}

// EqArgs is the payload of #[name = "value"].
type EqArgs struct {
	Value string
}

// ParenArgs is the payload of #[name(term, ...)]. Terms may be empty.
type ParenArgs struct {
	Terms []Term
}

func (NoArgs) args()    {}
func (EqArgs) args()    {}
func (ParenArgs) args() {}

// Term is one predicate inside a parenthesized argument list:
// Ident, KeyValue or Nested.
type Term interface {
	term()
	String() string
}

// Ident is a bare identifier term such as `test`.
type Ident struct {
	Name string
}

// KeyValue is a term of the form key = "value".
type KeyValue struct {
	Key   string
	Value string
}

// Nested is a function-style term such as all(a, b).
type Nested struct {
	Name string
	Args []Term
}

func (Ident) term()    {}
func (KeyValue) term() {}
func (Nested) term()   {}

func (i Ident) String() string { return i.Name }

func (kv KeyValue) String() string {
	return kv.Key + " = " + strconv.Quote(kv.Value)
}

func (n Nested) String() string {
	return n.Name + "(" + joinTerms(n.Args) + ")"
}

// String renders the attribute back into source form.
func (a Attribute) String() string {
	switch args := a.Args.(type) {
	case EqArgs:
		return "#[" + a.Name + " = " + strconv.Quote(args.Value) + "]"
	case ParenArgs:
		return "#[" + a.Name + "(" + joinTerms(args.Terms) + ")]"
	default:
		return "#[" + a.Name + "]"
	}
}

func joinTerms(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == nil {
			continue
		}
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}

// Cfg builds a #[cfg(...)] attribute from the given terms.
func Cfg(terms ...Term) Attribute {
	if terms == nil {
		terms = []Term{}
	}
	return Attribute{Name: "cfg", Args: ParenArgs{Terms: terms}}
}

// Marker builds an attribute without arguments, e.g. Marker("test").
func Marker(name string) Attribute {
	return Attribute{Name: name, Args: NoArgs{}}
}

// Feature is shorthand for the term feature = "name".
func Feature(name string) Term {
	return KeyValue{Key: "feature", Value: name}
}

// Call is shorthand for a Nested term.
func Call(name string, args ...Term) Term {
	return Nested{Name: name, Args: args}
}

// Item is an annotated declaration header such as `#[cfg(test)] fn helper`.
type Item struct {
	Kind  string
	Name  string
	Attrs []Attribute
	Span  Span
}
