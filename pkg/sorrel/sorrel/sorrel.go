// Package sorrel provides a public API for embedding the sorrel front end.
//
// Each entry point runs the lexer and parser over a source string and
// returns either the parsed tree or a *errors.Error describing the
// first lexical or syntax failure. The filename variants annotate
// errors with the originating file.
package sorrel

import (
	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
)

// Tokenize converts source text to its full token sequence.
func Tokenize(source string) ([]lexer.Token, error) {
	return lexer.New(source).Tokenize()
}

// TokenizeFile is Tokenize with a filename for error annotation.
func TokenizeFile(source, filename string) ([]lexer.Token, error) {
	return lexer.NewWithFilename(source, filename).Tokenize()
}

// ParseExpression parses a single expression; trailing input is an error.
func ParseExpression(source string) (ast.Expression, error) {
	return parser.New(lexer.New(source)).Parse()
}

// ParseBlock parses a newline- or semicolon-separated statement sequence.
func ParseBlock(source string) (*ast.Block, error) {
	return parser.New(lexer.New(source)).ParseBlock()
}

// ParseFunction parses a single function definition.
func ParseFunction(source string) (*ast.FunctionDefinition, error) {
	return parser.New(lexer.New(source)).ParseFunction()
}

// ParseClass parses a single class definition.
func ParseClass(source string) (*ast.ClassDefinition, error) {
	return parser.New(lexer.New(source)).ParseClass()
}

// ParseProgram parses a whole program: a sequence of class definitions.
func ParseProgram(source string) (*ast.Program, error) {
	return parser.New(lexer.New(source)).ParseProgram()
}

// ParseProgramFile is ParseProgram with a filename for error annotation.
func ParseProgramFile(source, filename string) (*ast.Program, error) {
	return parser.New(lexer.NewWithFilename(source, filename)).ParseProgram()
}
