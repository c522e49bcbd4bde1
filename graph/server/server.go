// Package server исполняет GraphQL-схему поверх резолверов пакета graph.
package server

import (
	"fmt"
	"net/http"

	"github.com/VitaminP8/blogql/graph"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
)

// NewSchema связывает SDL с резолверами
func NewSchema(r *graph.Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(graph.SchemaSDL, &rootResolver{r: r})
	if err != nil {
		return nil, fmt.Errorf("failed to bind resolvers: %w", err)
	}
	return schema, nil
}

// NewHandler: POST-запросы обслуживает relay, websocket-апгрейды - graphql-ws (подписки)
func NewHandler(schema *graphql.Schema) http.Handler {
	return graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
}
