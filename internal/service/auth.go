// Package service — identity gate business logic.
//
// AuthService sits between the HTTP auth handler and the user repository /
// token service:
//
//	AuthHandler (HTTP) → AuthService (allow-list, upsert, session) → UserRepository
//	                   ↘ TokenService (JWT)
//
// The gate's one rule: exactly one allow-listed Discord account id is
// permitted to sign in. Every other account is denied regardless of how
// complete its profile is, and regardless of whether a user record already
// exists for it.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/auth"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// AuthService handles the identity gate.
type AuthService struct {
	users          repository.UserRepository
	tokens         *auth.TokenService
	allowedDiscord string // the single allow-listed provider account id
	logger         *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	allowedDiscordID string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		allowedDiscord: allowedDiscordID,
		logger:         logger,
	}
}

// AuthResult bundles the user record and the issued session token so the
// handler can set the cookie and redirect in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// SignIn handles the Discord OAuth callback result.
//
//  1. Check the allow-list: deny with ErrForbidden unless the provider
//     account id equals the configured value.
//  2. Upsert the user record keyed by the account id, stamping last_login.
//     Persistence failures are logged and swallowed — they must not block
//     sign-in; the session subject falls back to the provider account id.
//  3. Issue a 30-day session token.
func (s *AuthService) SignIn(ctx context.Context, du *auth.DiscordUser) (*AuthResult, error) {
	if du == nil {
		return nil, fmt.Errorf("service/auth: Discord user must not be nil")
	}

	if s.allowedDiscord == "" || du.ID != s.allowedDiscord {
		s.logger.Warn("sign-in denied",
			slog.String("discordID", du.ID),
			slog.String("username", du.Username),
		)
		return nil, apperror.Forbidden("access denied: this account is not permitted to sign in")
	}

	name := du.GlobalName
	if name == "" {
		name = du.Username
	}

	user := &model.User{
		DiscordID:     du.ID,
		Email:         du.Email,
		Name:          name,
		Username:      du.Username,
		Discriminator: du.Discriminator,
		Avatar:        du.Avatar,
		Image:         du.AvatarURL(),
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		// Swallowed on purpose: losing the last_login bookkeeping must not
		// lock the owner out.
		s.logger.Error("failed to persist user record, continuing sign-in",
			slog.String("discordID", du.ID),
			slog.String("error", err.Error()),
		)
		user.ID = du.ID
	}

	s.logger.Info("user authenticated via Discord",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

// GetUserByID returns the user for the given internal ID. Used by the
// /api/me handler after the middleware validates the session.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// ValidateToken validates a session token and returns the userID it encodes.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}
