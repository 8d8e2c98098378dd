package httpadapter

import (
	"net/http"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

func mapFailureToHTTPStatus(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureNone:
		return http.StatusOK
	case domain.FailureInvalidInput:
		return http.StatusBadRequest
	case domain.FailureUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
