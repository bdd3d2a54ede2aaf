package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/buker/go-graphql/internal/resolver"
	"github.com/buker/go-graphql/internal/schema"
	"github.com/cockroachdb/errors"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	log "github.com/sirupsen/logrus"
)

// errorResponse is the body sent when a request never reaches execution.
type errorResponse struct {
	Errors []gqlerrors.FormattedError `json:"errors"`
}

func writeJSON(c *gin.Context, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		log.Error("Failed marshalling response: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{
		Errors: []gqlerrors.FormattedError{{Message: msg}},
	})
}

func wantsGraphiQL(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet &&
		c.Query("query") == "" &&
		strings.Contains(c.GetHeader("Accept"), "text/html")
}

// GraphQL godoc
// @Summary Execute a GraphQL operation
// @Description Runs a query or mutation against the message schema. Mutations require POST.
// @Tags graphql
// @Accept json
// @Produce json
// @Param query query string false "GraphQL document (GET)"
// @Param operationName query string false "operation to run"
// @Param variables query string false "JSON encoded variables"
// @Success 200 {object} graphql.Result
// @Failure 400 {object} errorResponse
// @Failure 405 {object} errorResponse
// @Router /graphql [get]
// @Router /graphql [post]
func (s *Server) handleGraphQL(c *gin.Context) {
	start := requestStart(c)

	if s.cfg.GraphiQL && wantsGraphiQL(c) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(graphiQLPage))
		return
	}

	req, err := ParseRequest(c.Request, s.cfg.MaxBodySize)
	if err != nil {
		var badReq *BadRequestError
		if errors.As(err, &badReq) {
			writeError(c, http.StatusBadRequest, badReq.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "Must provide query string.")
		return
	}
	if c.Request.Method == http.MethodGet && operationType(req) == "mutation" {
		c.Header("Allow", http.MethodPost)
		writeError(c, http.StatusMethodNotAllowed, "Can only perform a mutation operation from a POST request.")
		return
	}

	ctx := resolver.WithClientIP(c.Request.Context(), c.ClientIP())
	result := schema.Execute(ctx, s.schema, schema.Request{
		Query:         req.Query,
		OperationName: req.OperationName,
		Variables:     req.Variables,
	})

	status := http.StatusOK
	if result.HasErrors() {
		if result.Data == nil {
			status = http.StatusBadRequest
		}
		log.WithFields(log.Fields{
			"ip":     c.ClientIP(),
			"errors": len(result.Errors),
		}).Debug("Operation finished with errors: ", result.Errors[0].Message)
	}

	addRunTime(result, start)
	writeJSON(c, status, result)
}

// addRunTime records the milliseconds spent on the request in the result
// extensions.
func addRunTime(result *graphql.Result, start time.Time) {
	if result.Extensions == nil {
		result.Extensions = map[string]interface{}{}
	}
	result.Extensions["runTime"] = time.Since(start).Milliseconds()
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
