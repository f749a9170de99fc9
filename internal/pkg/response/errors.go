package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// FromError translates a service error into the matching HTTP error
// response using the shared taxonomy. Unrecognized errors become 500s with
// a generic message so internals never leak to clients.
func FromError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		NotFound(c, message, "NOT_FOUND")
	case errors.Is(err, apperrors.ErrConflict):
		Conflict(c, message, "CONFLICT")
	case errors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, message, "FORBIDDEN")
	case errors.Is(err, apperrors.ErrUnauthorized):
		Unauthorized(c, message, "UNAUTHORIZED")
	case errors.Is(err, apperrors.ErrBadRequest):
		BadRequest(c, message, "BAD_REQUEST")
	default:
		InternalServerError(c, "Internal server error", "INTERNAL")
	}
}
