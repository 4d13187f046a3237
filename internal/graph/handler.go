package graph

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"usergraph/internal/pkg/errs"
	"usergraph/internal/pkg/req"
	"usergraph/internal/pkg/resp"
)

// Request is the JSON body of a GraphQL POST. GET requests carry the same fields as
// URL parameters, with variables as a JSON string.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Extensions    map[string]interface{} `json:"extensions"`
}

type readOnlyKey struct{}

// withReadOnly marks ctx as belonging to a request that must not change state.
func withReadOnly(ctx context.Context) context.Context {
	return context.WithValue(ctx, readOnlyKey{}, true)
}

func isReadOnly(ctx context.Context) bool {
	readOnly, _ := ctx.Value(readOnlyKey{}).(bool)
	return readOnly
}

// Handler serves a GraphQL schema over HTTP.
type Handler struct {
	schema   *graphql.Schema
	graphiql bool
}

// NewHandler serves schema; graphiql enables the GraphiQL page on GET requests without a query.
func NewHandler(schema *graphql.Schema, graphiql bool) *Handler {
	return &Handler{
		schema:   schema,
		graphiql: graphiql,
	}
}

// ServeHTTP executes POST bodies and GET ?query= requests. Mutations require POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var params Request
		if customErr := req.BindJSONAllowUnknown(w, r, &params); customErr != nil {
			zerolog.Ctx(r.Context()).Warn().
				Int("code", customErr.Code).
				Msg("graphql: rejected request body")
			respondError(w, r, customErr)
			return
		}
		h.execute(r.Context(), w, r, params)

	case http.MethodGet:
		if !r.URL.Query().Has("query") && h.graphiql {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(graphiqlPage)
			return
		}

		params, customErr := paramsFromQuery(r)
		if customErr != nil {
			respondError(w, r, customErr)
			return
		}
		// Mutations over GET are refused by the resolvers.
		h.execute(withReadOnly(r.Context()), w, r, params)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, r, errs.NewError(errs.ErrMethodNotAllowed))
	}
}

func (h *Handler) execute(ctx context.Context, w http.ResponseWriter, r *http.Request, params Request) {
	if params.Query == "" {
		respondError(w, r, errs.NewError(errs.ErrInvalidParams))
		return
	}

	response := h.schema.Exec(ctx, params.Query, params.OperationName, params.Variables)

	if len(response.Errors) > 0 {
		zerolog.Ctx(ctx).Debug().
			Str("operation", params.OperationName).
			Int("errors", len(response.Errors)).
			Msg("graphql: response carries errors")
	}

	resp.RespondJSON(w, r, http.StatusOK, response)
}

func paramsFromQuery(r *http.Request) (Request, *errs.CustomError) {
	values := r.URL.Query()

	params := Request{
		Query:         values.Get("query"),
		OperationName: values.Get("operationName"),
	}

	if raw := values.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params.Variables); err != nil {
			return Request{}, errs.NewError(errs.ErrInvalidJSONFormat)
		}
	}

	return params, nil
}

func respondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	resp.RespondJSON(w, r, customErr.Status, newErrorBody(customErr))
}
