package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

// AuthService is the single-session mock login flow. It holds at most one
// current user, persisted under domain.KeyUser. It is not a security boundary.
type AuthService struct {
	user        *collection.Collection[int, domain.User]
	credentials map[string]domain.Credential
	logger      *zap.Logger
}

func NewAuthService(user *collection.Collection[int, domain.User], logger *zap.Logger) (*AuthService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	accounts := domain.MockAccounts()
	credentials := make(map[string]domain.Credential, len(accounts))
	for _, acc := range accounts {
		cred, err := domain.NewCredential(acc.User, acc.Password)
		if err != nil {
			return nil, fmt.Errorf("auth service: hash mock credential: %w", err)
		}
		credentials[acc.User.Username] = cred
	}

	return &AuthService{
		user:        user,
		credentials: credentials,
		logger:      logger.Named("auth"),
	}, nil
}

// Login reports whether the pair matches the allow-list. On failure nothing
// changes and callers cannot tell an unknown user from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, bool) {
	cred, ok := s.credentials[strings.TrimSpace(username)]
	if !ok || cred.CheckPassword(password) != nil {
		return domain.User{}, false
	}

	if err := s.setCurrent(ctx, cred.User); err != nil {
		s.logger.Error("failed to set current user", zap.Error(err))
		return domain.User{}, false
	}
	return cred.User, true
}

// Register always fabricates a new user and logs it in. Only a failed
// mutation (cancelled while loading) is reported.
func (s *AuthService) Register(ctx context.Context, username, name string) (domain.User, error) {
	u := domain.NewUser(len(s.credentials)+1, username, name)
	if err := s.setCurrent(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.user.Reset(ctx)
}

func (s *AuthService) Current() (domain.User, error) {
	users := s.user.List()
	if len(users) == 0 {
		return domain.User{}, domain.ErrNotLoggedIn
	}
	return users[0], nil
}

func (s *AuthService) UpdateTheme(ctx context.Context, themeKey string) (domain.User, error) {
	var updated domain.User
	_, err := s.user.Mutate(ctx, func(current []domain.User) ([]domain.User, error) {
		if len(current) == 0 {
			return nil, domain.ErrNotLoggedIn
		}
		current[0].Theme = themeKey
		updated = current[0]
		return current, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *AuthService) setCurrent(ctx context.Context, u domain.User) error {
	_, err := s.user.Mutate(ctx, func([]domain.User) ([]domain.User, error) {
		return []domain.User{u}, nil
	})
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}
	s.logger.Info("user signed in", zap.String("username", u.Username))
	return nil
}
