package auth

import "context"

// AuthService is the identity boundary: it turns credentials into signed
// tokens carrying the caller's role. Everything downstream trusts those
// claims.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
