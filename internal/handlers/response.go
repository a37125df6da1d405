package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// corsHeaders are sent on every response, errors included, so browser
// callers can always read the body.
var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "GET,OPTIONS",
}

// NewResponse builds a gateway response whose body is the JSON encoding of
// payload. Non-ASCII characters and HTML characters are written literally.
func NewResponse(status int, payload any) events.APIGatewayProxyResponse {
	body, err := encodeJSON(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = encodeJSON(map[string]string{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}

	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

func encodeJSON(payload any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
