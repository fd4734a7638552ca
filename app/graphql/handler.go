package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/prakashraj/godown/pkg/bind"
	"github.com/prakashraj/godown/pkg/response"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves /graphql. POST takes a JSON body {query, operationName,
// variables}; GET takes ?query= for quick ad-hoc reads.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request

		switch r.Method {
		case http.MethodGet:
			req.Query = r.URL.Query().Get("query")
			req.OperationName = r.URL.Query().Get("operationName")
			if raw := r.URL.Query().Get("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					response.Error(w, http.StatusBadRequest, "invalid variables: "+err.Error())
					return
				}
			}
		case http.MethodPost:
			body, err := bind.Body(r)
			if err != nil {
				response.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			if err := json.Unmarshal(body, &req); err != nil {
				response.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
				return
			}
		default:
			response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if req.Query == "" {
			response.Error(w, http.StatusBadRequest, "query is required")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		response.JSON(w, http.StatusOK, result)
	}
}
