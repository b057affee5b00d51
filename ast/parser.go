package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// attrList is the grammar root for a bare attribute list.
type attrList struct {
	Attrs []*attrNode `parser:"@@*"`
}

// itemFile is the grammar root for a file of item headers.
type itemFile struct {
	Items []*itemNode `parser:"@@*"`
}

type itemNode struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Attrs  []*attrNode `parser:"@@*"`
	Kind   string      `parser:"@Ident"`
	Name   string      `parser:"@Ident ';'?"`
}

type attrNode struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string     `parser:"'#' '[' @Ident"`
	Eq     *string    `parser:"( '=' @String"`
	Paren  *parenNode `parser:"| @@ )? ']'"`
}

// parenNode captures the opening paren so that an empty list still
// produces a node.
type parenNode struct {
	Open  string      `parser:"@'('"`
	Terms []*termNode `parser:"( @@ ( ',' @@ )* ','? )? ')'"`
}

type termNode struct {
	Pos   lexer.Position
	Name  string     `parser:"@Ident"`
	Value *string    `parser:"( '=' @String"`
	Args  *parenNode `parser:"| @@ )?"`
}

var (
	attrParser = participle.MustBuild[attrList](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)

	itemParser = participle.MustBuild[itemFile](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
)

// ParseAttributes parses a sequence of attributes such as
// `#[test] #[cfg(not(feature = "json"))]`.
func ParseAttributes(filename, src string) ([]Attribute, error) {
	list, err := attrParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return lowerAttrs(list.Attrs), nil
}

// ParseItems parses a file of item headers, each preceded by its attributes.
func ParseItems(filename, src string) ([]Item, error) {
	file, err := itemParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	items := make([]Item, 0, len(file.Items))
	for _, n := range file.Items {
		items = append(items, Item{
			Kind:  n.Kind,
			Name:  n.Name,
			Attrs: lowerAttrs(n.Attrs),
			Span:  spanOf(n.Pos, n.EndPos),
		})
	}
	return items, nil
}

func lowerAttrs(nodes []*attrNode) []Attribute {
	attrs := make([]Attribute, 0, len(nodes))
	for _, n := range nodes {
		n.PostProcess()
		attr := Attribute{Name: n.Name, Args: NoArgs{}, Span: spanOf(n.Pos, n.EndPos)}
		switch {
		case n.Eq != nil:
			attr.Args = EqArgs{Value: *n.Eq}
		case n.Paren != nil:
			attr.Args = ParenArgs{Terms: lowerTerms(n.Paren.Terms)}
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func lowerTerms(nodes []*termNode) []Term {
	terms := make([]Term, 0, len(nodes))
	for _, n := range nodes {
		n.PostProcess()
		switch {
		case n.Value != nil:
			terms = append(terms, KeyValue{Key: n.Name, Value: *n.Value})
		case n.Args != nil:
			terms = append(terms, Nested{Name: n.Name, Args: lowerTerms(n.Args.Terms)})
		default:
			terms = append(terms, Ident{Name: n.Name})
		}
	}
	return terms
}

func spanOf(start, end lexer.Position) Span {
	return Span{
		Start:  start.Offset,
		End:    end.Offset,
		Line:   start.Line,
		Column: start.Column,
	}
}
