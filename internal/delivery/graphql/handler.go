package graphql

import (
	"encoding/json"
	"net/http"

	"telehealth-api/pkg/response"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/sirupsen/logrus"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlResponse struct {
	Data   interface{}                `json:"data"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}

// Handler serves POST /graphql. It executes the query and runs every
// resulting error through the environment-aware formatter before the
// response hits the wire.
type Handler struct {
	schema graphql.Schema
	log    *logrus.Logger
	env    string
}

func NewHandler(schema graphql.Schema, log *logrus.Logger, env string) *Handler {
	return &Handler{
		schema: schema,
		log:    log,
		env:    env,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Query == "" {
		response.Error(w, http.StatusBadRequest, "Query is required", nil)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	errs := result.Errors
	// Parse and validation failures never reach a resolver, so they
	// carry no code of their own. Tag them before formatting so the
	// messages survive masking in production.
	if result.Data == nil && len(errs) > 0 {
		for i := range errs {
			if errs[i].Extensions == nil {
				errs[i].Extensions = map[string]interface{}{"code": CodeValidationFailed}
			}
		}
	}

	for _, err := range errs {
		h.log.WithFields(logrus.Fields{
			"path":    err.Path,
			"message": err.Message,
		}).Warn("graphql error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(graphqlResponse{
		Data:   result.Data,
		Errors: FormatErrors(errs, h.env),
	})
}
