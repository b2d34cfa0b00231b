package oddsapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCodeUnknownSport é o error_code devolvido pelo provedor para sport inválido
const ErrorCodeUnknownSport = "UNKNOWN_SPORT"

var (
	// ErrMissingAPIKey indica que ODDS_API_KEY não foi configurada; nenhuma chamada é feita
	ErrMissingAPIKey = errors.New("odds api key is not configured")

	// ErrMalformedResponse indica resposta 2xx com corpo que não é JSON
	ErrMalformedResponse = errors.New("odds api returned a malformed response")
)

// APIError representa uma resposta não-2xx do provedor
type APIError struct {
	StatusCode int
	Body       []byte
	Code       string // error_code do provedor, quando presente
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("odds api http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("odds api http %d", e.StatusCode)
}

func (e *APIError) IsUnknownSport() bool { return e.Code == ErrorCodeUnknownSport }

// Detail devolve o corpo do erro como JSON decodificado quando possível, senão como texto
func (e *APIError) Detail() any {
	var v any
	if len(e.Body) > 0 && json.Unmarshal(e.Body, &v) == nil {
		return v
	}
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return e.Error()
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var payload struct {
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.ErrorCode
		e.Message = payload.Message
	}
	return e
}

// AsAPIError é um atalho para errors.As com *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
