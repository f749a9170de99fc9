package users

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mptsix/todaydiary/internal/pkg/response"
	"github.com/mptsix/todaydiary/internal/pkg/token"
)

// AuthHeader carries the identity token on protected requests.
const AuthHeader = "X-AUTH-TOKEN"

// UserFinder is the slice of the store the auth middleware needs.
type UserFinder interface {
	FindByUserID(ctx context.Context, userID string) (*User, error)
}

// NewAuthMiddleware resolves the X-AUTH-TOKEN header to a stored user. A
// missing, malformed or expired token is rejected with 401; a valid token
// whose subject no longer exists with 404. On success the request context
// carries "userId" and the full "user".
func NewAuthMiddleware(finder UserFinder, tokens *token.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(AuthHeader)
		if raw == "" {
			response.Unauthorized(c, "Authentication token required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		userID, err := tokens.ResolveSubject(raw)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		user, err := finder.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			response.NotFound(c, "User not found", "USER_NOT_FOUND")
			c.Abort()
			return
		}

		c.Set("userId", user.UserID)
		c.Set("user", user)
		c.Next()
	}
}
