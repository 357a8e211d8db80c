package main

import (
	"context"
	"fmt"
	"time"

	"registrar/internal/config"
	"registrar/internal/users"
	"registrar/pkg/domain"
	"registrar/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed RS256 JWT
// for a user ID, or for the user signed in with --email, using the configured
// private key. The token is accepted as a bearer token by the API and as the
// session cookie by the pages.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates JWT token for given user ID",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			TTL, _ := cmd.Flags().GetDuration("ttl")

			switch {
			case email != "":
				subject = signIn(context.Background(), cfg, email)
			case subject == "":
				logger.Fatal(context.Background(), "either --subject or --email is required")
			}
			if _, err := uuid.Parse(subject); err != nil {
				logger.Fatal(context.Background(), "subject must be a user ID", zap.Error(err))
			}

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				logger.Fatal(context.Background(), "could not parse RSA private key", zap.Error(err))
			}

			claims := jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				NotBefore: jwt.NewNumericDate(time.Now()),
			}
			token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
			signed, err := token.SignedString(key)
			if err != nil {
				logger.Fatal(context.Background(), "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "JWT subject, the user ID")
	cmd.Flags().String("email", "", "Sign in this email, creating the user if needed, and use its ID")
	cmd.Flags().Duration("ttl", cfg.JWT.TTL, "Token TTL (e.g., 30s, 15m, 1h)")
	cmd.MarkFlagsMutuallyExclusive("subject", "email")

	return cmd
}

// signIn creates or refreshes the user and retrieves its pending domain
// invitations, the way a login does.
func signIn(ctx context.Context, cfg *config.Config, email string) string {
	st, _, closeStrg := getStorage(ctx, cfg)
	defer closeStrg()

	user, err := users.New(st, time.Now).SignIn(ctx, domain.User{Email: email})
	if err != nil {
		logger.Fatal(ctx, "could not sign in user", zap.Error(err))
	}
	logger.Info(ctx, "signed in user", zap.String("userID", user.ID.String()), zap.String("email", user.Email))

	return user.ID.String()
}
