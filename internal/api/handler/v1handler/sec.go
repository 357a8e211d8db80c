package v1handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"registrar/internal/config"
	"registrar/internal/users"
	"registrar/pkg/controller"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookie carries the same token as the Authorization header for browser pages.
const SessionCookie = "session"

type contextKey string

const (
	// UserIDKey holds the domain.UserID of the verified token subject.
	UserIDKey contextKey = "userID"
	userKey   contextKey = "user"
)

// SecHandlerOptions configure token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with.
	PublicKey string
}

// NewSecHandlerOptions reads the verification key from the configuration.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler authenticates requests carrying an RS256 JWT whose subject is a user ID.
type SecHandler struct {
	parser *jwt.Parser
	keyFn  jwt.Keyfunc
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
		keyFn: func(*jwt.Token) (any, error) { return key, nil },
	}, nil
}

// HandleBearerAuth verifies token and stores its subject in the returned context.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, s.keyFn); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(id)), nil
}

// tokenFrom prefers the Authorization header over the session cookie.
func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}

		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}

	return ""
}

// Authenticate returns a middleware that rejects requests without a valid
// token and loads the token's user into the request context.
func (s *SecHandler) Authenticate(u users.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFrom(r)
			if token == "" {
				controller.WriteError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing token"))

				return
			}
			ctx, err := s.HandleBearerAuth(r.Context(), token)
			if err != nil {
				controller.WriteError(r.Context(), w, err)

				return
			}

			user, err := u.Get(ctx, GetUserIDFromContext(ctx))
			if errors.Is(err, serrors.ErrNotFound) {
				controller.WriteError(ctx, w, serrors.With(serrors.ErrUnauthorized, "unknown user"))

				return
			}
			if err != nil {
				controller.WriteError(ctx, w, err)

				return
			}

			ctx = WithUser(ctx, *user)
			ctx = logger.WithFields(ctx, zap.String("userID", user.ID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user ID or the zero ID.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	id, _ := ctx.Value(UserIDKey).(domain.UserID)

	return id
}

// GetUserFromContext returns the authenticated user loaded by Authenticate.
func GetUserFromContext(ctx context.Context) domain.User {
	u, _ := ctx.Value(userKey).(domain.User)

	return u
}

// WithUser stores an authenticated user in ctx.
func WithUser(ctx context.Context, user domain.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)

	return context.WithValue(ctx, userKey, user)
}
