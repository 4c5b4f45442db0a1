// Package gql serves the GraphQL API for notifications and the content
// mutations that trigger them.
package gql

import (
	_ "embed"
	"net/http"

	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the schema and binds it to the services
func NewSchema(content *services.ContentService, notifications *services.NotificationService) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, &Resolver{content: content, notifications: notifications})
}

// Handler serves POST requests carrying {query, variables, operationName}.
// The caller is read from the request context.
func Handler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}
