package graph

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaSDL - GraphQL-схема API
//
//go:embed schema.graphqls
var SchemaSDL string

// LoadSchema разбирает SchemaSDL в AST (типы, поля, аргументы).
func LoadSchema() (*ast.Schema, error) {
	return gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: SchemaSDL})
}
