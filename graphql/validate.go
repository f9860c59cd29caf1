package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ValidateDocument parses a query document and reports a config-kind error
// when it is not syntactically valid GraphQL. The operation service runs
// every fixed query through this at construction so a bad document fails
// at startup instead of on first use.
func ValidateDocument(query string) error {
	if _, err := parser.ParseQuery(&ast.Source{Input: query}); err != nil {
		return ConfigError(fmt.Sprintf("invalid GraphQL document: %v", err))
	}
	return nil
}
