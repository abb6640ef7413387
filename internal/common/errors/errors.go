// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidAnalysisInput ErrorCode = "INVALID_ANALYSIS_INPUT"

	ErrCodeCatalogLoadFailed  ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeTariffLookupFailed ErrorCode = "TARIFF_LOOKUP_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeNewsFetchFailed    ErrorCode = "NEWS_FETCH_FAILED"
	ErrCodeWeatherFetchFailed ErrorCode = "WEATHER_FETCH_FAILED"

	ErrCodeAlertPublishFailed ErrorCode = "ALERT_PUBLISH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError unwraps err to a *StandardError if there is one in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewProductNotFoundError(productID string) *StandardError {
	return newError(ErrCodeProductNotFound, "Product not found", productID, false).
		WithMetadata("productId", productID)
}

func NewInvalidAnalysisInputError(details string) *StandardError {
	return newError(ErrCodeInvalidAnalysisInput, "Invalid analysis input", details, false)
}

func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, fmt.Sprintf("Failed to load catalog from %s", source), err.Error(), true)
}

func NewTariffLookupFailedError(err error) *StandardError {
	return newError(ErrCodeTariffLookupFailed, "Tariff lookup failed", err.Error(), true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection failed", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, fmt.Sprintf("Query %s failed", queryType), err.Error(), true)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, fmt.Sprintf("Query %s timed out", queryType), "", true)
}

func NewInvalidQueryTypeError(queryType string) *StandardError {
	return newError(ErrCodeInvalidQueryType, "Invalid query type", queryType, false)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, fmt.Sprintf("Search on %s failed", index), err.Error(), true)
}

func NewNewsFetchFailedError(err error) *StandardError {
	return newError(ErrCodeNewsFetchFailed, "News fetch failed", err.Error(), true)
}

func NewWeatherFetchFailedError(err error) *StandardError {
	return newError(ErrCodeWeatherFetchFailed, "Weather fetch failed", err.Error(), true)
}

func NewAlertPublishFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeAlertPublishFailed, fmt.Sprintf("Failed to publish %s alert", channel), err.Error(), true)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

// BPMNErrorMapping maps internal codes to the error codes modelled in the BPMN diagrams.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProductNotFound:          "PRODUCT_NOT_FOUND",
	ErrCodeInvalidAnalysisInput:     "INVALID_ANALYSIS_INPUT",
	ErrCodeCatalogLoadFailed:        "CATALOG_LOAD_FAILED",
	ErrCodeTariffLookupFailed:       "TARIFF_LOOKUP_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeInvalidQueryType:         "INVALID_QUERY_TYPE",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeNewsFetchFailed:          "SIGNAL_UNAVAILABLE",
	ErrCodeWeatherFetchFailed:       "SIGNAL_UNAVAILABLE",
	ErrCodeAlertPublishFailed:       "ALERT_PUBLISH_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeTariffLookupFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeAlertPublishFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeNewsFetchFailed,
		ErrCodeWeatherFetchFailed:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and dashboards.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PRODUCT") || strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "TARIFF"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NEWS") || strings.Contains(codeStr, "WEATHER"):
		return "SIGNAL"
	case strings.Contains(codeStr, "ALERT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
