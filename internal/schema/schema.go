// Package schema declares the GraphQL types and root fields of the server and
// binds them to a resolver.Resolver.
package schema

import (
	"context"

	"github.com/buker/go-graphql/internal/random"
	"github.com/buker/go-graphql/internal/records"
	"github.com/buker/go-graphql/internal/resolver"
	"github.com/buker/go-graphql/internal/users"
	"github.com/cockroachdb/errors"
	"github.com/graphql-go/graphql"
)

// Request is a single GraphQL operation to execute.
type Request struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
}

// Execute runs req against schema. Field errors are reported inside the
// result, never returned.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}

// New builds the schema served by the endpoint.
func New(r resolver.Resolver) (graphql.Schema, error) {
	message := graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(records.Record).ID, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optional(p.Source.(records.Record).Content), nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optional(p.Source.(records.Record).Author), nil
				},
			},
		},
	})

	messageInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MessageInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"content": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"author":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	randomDie := graphql.NewObject(graphql.ObjectConfig{
		Name: "RandomDie",
		Fields: graphql.Fields{
			"numSides": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*random.Die).NumSides, nil
				},
			},
			"rollOnce": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*random.Die).RollOnce(), nil
				},
			},
			"roll": &graphql.Field{
				Type: graphql.NewList(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"numRolls": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*random.Die).Roll(intArg(p.Args, "numRolls")), nil
				},
			},
		},
	})

	user := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(users.User).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(users.User).Name, nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"quoteOfTheDay": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.QuoteOfTheDay(p.Context), nil
				},
			},
			"random": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Random(p.Context), nil
				},
			},
			"rollDice": &graphql.Field{
				Type: graphql.NewList(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"numDice":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"numSides": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.RollDice(p.Context, intArg(p.Args, "numDice"), intArg(p.Args, "numSides")), nil
				},
			},
			"getDie": &graphql.Field{
				Type: randomDie,
				Args: graphql.FieldConfigArgument{
					"numSides": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.GetDie(p.Context, intArg(p.Args, "numSides")), nil
				},
			},
			"getMessage": &graphql.Field{
				Type: message,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					record, err := r.GetMessage(p.Context, stringArg(p.Args, "id"))
					if err != nil {
						return nil, err
					}
					return record, nil
				},
			},
			"user": &graphql.Field{
				Type: user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, ok := r.User(p.Context, stringArg(p.Args, "id"))
					if !ok {
						return nil, nil
					}
					return u, nil
				},
			},
			"ip": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.IP(p.Context), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createMessage": &graphql.Field{
				Type: message,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: messageInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateMessage(p.Context, inputArg(p.Args)), nil
				},
			},
			"updateMessage": &graphql.Field{
				Type: message,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: messageInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					record, err := r.UpdateMessage(p.Context, stringArg(p.Args, "id"), inputArg(p.Args))
					if err != nil {
						return nil, err
					}
					return record, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return graphql.Schema{}, errors.Wrap(err, "building schema")
	}
	return schema, nil
}
