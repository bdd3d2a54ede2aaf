package server

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// operationType returns the type ("query", "mutation", "subscription") of the
// operation req would run, or "" when it cannot be told before execution.
func operationType(req *Request) string {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return ""
	}
	var found *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if req.OperationName == "" {
			if found != nil {
				// Ambiguous; execution reports it.
				return ""
			}
			found = op
			continue
		}
		if op.Name != nil && op.Name.Value == req.OperationName {
			found = op
			break
		}
	}
	if found == nil {
		return ""
	}
	return found.Operation
}
