package ast

import "github.com/alecthomas/participle/v2/lexer"

// Lexer defines the token rules for attribute lists and item headers.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "Whitespace", Pattern: `\s+`, Action: nil},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Punct", Pattern: `[#\[\](),=;]`, Action: nil},
	},
})
