package auth

// JWTVerifier defines the interface for JWT token verification.
// This abstraction keeps the middleware agnostic to where the keys
// come from, so tests can plug in a static verifier.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
