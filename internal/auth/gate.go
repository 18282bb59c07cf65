package auth

import (
	"errors"

	"github.com/technexus/blog-server/internal/models"
)

// ErrUnauthenticated means no identity was presented. Distinct from
// ErrForbidden so callers can branch (redirect to login vs access denied).
var ErrUnauthenticated = errors.New("not authenticated")

// ErrForbidden means an identity was presented but its role is not allowed.
var ErrForbidden = errors.New("not authorized")

// Require permits the operation only when an identity is present and its
// role is in the allow-list.
func Require(user *models.User, allowed ...models.Role) error {
	if user == nil {
		return ErrUnauthenticated
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
