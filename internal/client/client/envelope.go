package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// Envelope is the wrapper every backend response is sent in.
type Envelope[T any] struct {
	Success    bool               `json:"success"`
	Code       int                `json:"code,omitempty"`
	Message    string             `json:"message"`
	Data       T                  `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

type errorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeEnvelope[T any](body []byte) (Envelope[T], error) {
	var env Envelope[T]
	if len(body) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("failed to decode response: %w", err)
	}
	return env, nil
}

func decodeAPIError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Message = strings.TrimSpace(env.Message)
		apiErr.Fields = env.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = DefaultErrorMessage
	}
	return apiErr
}

// pageOf picks the pagination block wherever the endpoint placed it.
func pageOf[T any](items []T, nested *models.Pagination, top *models.Pagination) models.Page[T] {
	p := models.Page[T]{Items: items}
	switch {
	case nested != nil:
		p.Pagination = *nested
	case top != nil:
		p.Pagination = *top
	default:
		p.Pagination = models.Pagination{Page: 1, Limit: len(items), Total: len(items), TotalPages: 1}
	}
	return p
}
