// Package ctree wraps tree-sitter parsing of C source files.
//
// It is deliberately scoped to a single grammar: every node kind referenced
// by internal/metrics is defined by the C grammar that
// github.com/smacker/go-tree-sitter/c exposes, so there is no per-call
// language dispatch to get wrong.
package ctree

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/brandon-arrendondo/knots/internal/knotserr"
)

// Parser parses C source into a tree-sitter AST. A Parser is not safe for
// concurrent use; callers that analyze files concurrently should construct
// one Parser per goroutine.
type Parser struct {
	sp *sitter.Parser
}

// New constructs a Parser bound to the C grammar.
func New() *Parser {
	sp := sitter.NewParser()
	sp.SetLanguage(c.GetLanguage())
	return &Parser{sp: sp}
}

// Unit is a parsed C translation unit: its tree plus the source bytes the
// tree's byte ranges index into. Every downstream consumer slices Source
// with Node.StartByte()/EndByte() rather than re-reading the file.
type Unit struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// Root returns the translation_unit root node.
func (u *Unit) Root() *sitter.Node {
	return u.Tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (u *Unit) Close() {
	if u.Tree != nil {
		u.Tree.Close()
	}
}

// ParseFile reads and parses a single C source file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Unit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, knotserr.New(knotserr.KindIO, "ctree.ParseFile", path, err)
	}
	return p.Parse(ctx, path, source)
}

// Parse parses raw C source already held in memory.
func (p *Parser) Parse(ctx context.Context, path string, source []byte) (*Unit, error) {
	tree, err := p.sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, knotserr.New(knotserr.KindParse, "ctree.Parse", path, err)
	}
	return &Unit{Tree: tree, Source: source, Path: path}, nil
}

// Language exposes the underlying C grammar.
func Language() *sitter.Language {
	return c.GetLanguage()
}
