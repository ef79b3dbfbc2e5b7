package acl

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
)

// MapHTTPError maps an HTTP response to a domain error.
// This function handles:
//   - HTTP status codes → domain errors (429 gets its own domain error so
//     quote retrieval can tag the rate-limited fallback tier)
//   - Client-level errors (circuit breaker, retries exhausted)
//
// Parameters:
//   - resp: The HTTP response (may be nil for transport errors)
//   - clientErr: Any error from the HTTP client (may be nil)
//   - serviceName: Name of the external service for error context
//   - operation: The operation being performed (e.g., "fetch quotes")
//   - entityID: The ID of the entity being operated on (used for NotFoundError)
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	// Success responses should not call this function
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return mapStatusCode(resp.StatusCode, serviceName, operation, entityID)
}

// mapClientError translates client-level errors to domain errors.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapStatusCode translates HTTP status codes to domain errors.
func mapStatusCode(status int, serviceName, operation, entityID string) error {
	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, entityID)

	case http.StatusTooManyRequests:
		return domain.NewRateLimitedError(serviceName)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", fmt.Sprintf("%s rejected as invalid", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed with status %d", operation, status))
	}
}
