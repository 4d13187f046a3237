/*
Package graph exposes the registration service over GraphQL.

The schema is embedded in the binary and bound to Resolver with graph-gophers/graphql-go.
Handler serves it over HTTP: POST executes a query, GET serves the GraphiQL page when enabled.
*/
package graph

import (
	"context"
	_ "embed"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// MaxQueryDepth bounds selection nesting for every request.
const MaxQueryDepth = 10

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the embedded schema and binds it to resolver. It panics if the
// resolver does not satisfy the schema.
func NewSchema(resolver *Resolver, logger zerolog.Logger) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, resolver,
		graphql.MaxDepth(MaxQueryDepth),
		graphql.Logger(panicLogger{logger: logger}),
	)
}

// panicLogger routes resolver panics into zerolog.
type panicLogger struct {
	logger zerolog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &l.logger
	}

	log.Error().
		Interface("panic", value).
		Bytes("stack", debug.Stack()).
		Msg("graphql: resolver panic")
}
