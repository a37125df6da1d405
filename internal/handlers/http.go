package handlers

import (
	"net/http"

	"cv-backend/internal/middleware"

	"github.com/aws/aws-lambda-go/events"
)

// ServeHTTP lets the local server drive the same code path as the Lambda
// runtime by translating the request into a gateway proxy event.
func (h *CVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, _ := h.Handle(r.Context(), toProxyRequest(r))

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}

func toProxyRequest(r *http.Request) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Headers:    make(map[string]string, len(r.Header)),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  middleware.GetRequestID(r.Context()),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
		},
	}
	for k := range r.Header {
		req.Headers[k] = r.Header.Get(k)
	}

	// API Gateway sends null rather than an empty map when there is no query.
	query := r.URL.Query()
	if len(query) > 0 {
		req.QueryStringParameters = make(map[string]string, len(query))
		req.MultiValueQueryStringParameters = make(map[string][]string, len(query))
		for k, values := range query {
			req.QueryStringParameters[k] = values[len(values)-1]
			req.MultiValueQueryStringParameters[k] = values
		}
	}
	return req
}
