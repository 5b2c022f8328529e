package auth

import (
	"github.com/golang-jwt/jwt/v5"

	services "socarchive/internal/domain/services/catalog"
)

const adminRole = "admin"

// Claims are the JWT claims issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// Requester converts verified claims into the requester identity the
// service layer works with.
func (c *Claims) Requester() services.Requester {
	return services.Requester{
		Subject: c.Subject,
		Admin:   c.Role == adminRole,
	}
}
