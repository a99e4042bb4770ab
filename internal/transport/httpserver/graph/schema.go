// Package graph serves the meal planner GraphQL API. Resolvers read the
// caller identity placed on the context by the session middleware and
// delegate to the domain services.
package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 12

func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, resolver, graphql.MaxDepth(maxQueryDepth))
}
