package server

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errBodyTooLarge = errors.New("request body is too large")

// Request is a GraphQL request as sent over HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// BadRequestError wraps failures to decode an incoming request.
type BadRequestError struct {
	Err error
}

// Error implements Go's error interface.
func (e *BadRequestError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the decoding failure.
func (e *BadRequestError) Unwrap() error {
	return e.Err
}

func badRequest(err error) error {
	return &BadRequestError{Err: err}
}

// singleValue returns "" when key is absent and fails when it is repeated.
func singleValue(values url.Values, key string) (string, error) {
	v := values[key]
	switch len(v) {
	case 0:
		return "", nil
	case 1:
		return v[0], nil
	default:
		return "", errors.Newf(`multiple values are provided to "%s", but only one expected`, key)
	}
}

func parseValues(values url.Values) (*Request, error) {
	var (
		req Request
		err error
	)
	if req.Query, err = singleValue(values, "query"); err != nil {
		return nil, badRequest(err)
	}
	if req.OperationName, err = singleValue(values, "operationName"); err != nil {
		return nil, badRequest(err)
	}
	variables, err := singleValue(values, "variables")
	if err != nil {
		return nil, badRequest(err)
	}
	if variables != "" {
		if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
			return nil, badRequest(errors.Wrap(err, "variables are invalid JSON"))
		}
	}
	return &req, nil
}

// ParseRequest reads a GraphQL request from the URL of a GET or from the body
// of a POST. POST bodies may be application/json, application/graphql or
// application/x-www-form-urlencoded; the query string of a POST is used as a
// fallback for fields the body leaves empty. At most maxBodySize bytes are read.
func ParseRequest(r *http.Request, maxBodySize uint) (*Request, error) {
	fromURL, err := parseValues(r.URL.Query())
	if err != nil {
		return nil, err
	}
	if r.Method != http.MethodPost {
		return fromURL, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, badRequest(errors.Wrap(err, "reading body"))
	}
	if uint(len(body)) > maxBodySize {
		return nil, badRequest(errBodyTooLarge)
	}

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var req *Request
	switch contentType {
	case "application/graphql":
		req = &Request{Query: string(body)}
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, badRequest(err)
		}
		if req, err = parseValues(values); err != nil {
			return nil, err
		}
	case "", "application/json":
		req = &Request{}
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, req); err != nil {
				return nil, badRequest(errors.Wrap(err, "body is invalid JSON"))
			}
		}
	default:
		req = &Request{}
	}

	if req.Query == "" {
		req.Query = fromURL.Query
	}
	if req.OperationName == "" {
		req.OperationName = fromURL.OperationName
	}
	if req.Variables == nil {
		req.Variables = fromURL.Variables
	}
	return req, nil
}
