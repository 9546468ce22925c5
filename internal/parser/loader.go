// # internal/parser/loader.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// GrammarLoader holds the single tree-sitter grammar the Parser operates
// over. Only Python is in scope, so only the Python grammar is compiled in.
type GrammarLoader struct {
	language *sitter.Language
}

// NewGrammarLoader loads the Python grammar. It never fails in practice
// (the grammar is compiled in), but returns an error to keep the
// constructor symmetrical with callers that check err.
func NewGrammarLoader() (*GrammarLoader, error) {
	return &GrammarLoader{
		language: sitter.NewLanguage(tree_sitter_python.Language()),
	}, nil
}

func (gl *GrammarLoader) Language() *sitter.Language {
	return gl.language
}
