package middleware

import (
	"strings"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by the authentication middleware.
const (
	// KeyIdentity holds the resolved *authz.Identity.
	KeyIdentity = "identity"

	// KeyClaims holds the raw *service.IdentityClaims from the token.
	KeyClaims = "claims"
)

// AuthMiddleware authenticates requests against the identity provider and
// resolves the caller's persisted role. Role and verification always come
// from the User record, never from token claims.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
	userUC   usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.IdentityVerifier, userUC usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, userUC: userUC}
}

// Authenticate validates the bearer token and resolves the caller's
// Identity. A valid token whose UID has no User record yet still passes,
// with only the raw claims set, so the sync endpoint can create the User.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthenticated
		}

		claims, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenString)
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}
		c.Set(KeyClaims, claims)

		identity, err := m.userUC.ResolveIdentity(c.Request().Context(), claims.UID)
		if err != nil {
			return err
		}
		if identity != nil {
			c.Set(KeyIdentity, identity)
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the resolved identity
// holds one of the required roles. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.RequireRole(IdentityFromContext(c), roles...); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// IdentityFromContext returns the resolved identity, or nil when the
// request is unauthenticated or the UID has no User record.
func IdentityFromContext(c echo.Context) *authz.Identity {
	if id, ok := c.Get(KeyIdentity).(*authz.Identity); ok {
		return id
	}

	return nil
}

// ClaimsFromContext returns the raw token claims set by Authenticate.
func ClaimsFromContext(c echo.Context) *service.IdentityClaims {
	if claims, ok := c.Get(KeyClaims).(*service.IdentityClaims); ok {
		return claims
	}

	return nil
}
