package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/oauth"
)

// OAuthLoginUseCase resolves a federated profile to a user, provisioning one
// on first sight, and issues the same token a local login would.
type OAuthLoginUseCase struct {
	Users  UserRepositoryInterface
	Tokens TokenServiceInterface
}

func NewOAuthLoginUseCase(users UserRepositoryInterface, tokens TokenServiceInterface) *OAuthLoginUseCase {
	return &OAuthLoginUseCase{Users: users, Tokens: tokens}
}

func (uc *OAuthLoginUseCase) Execute(ctx context.Context, profile oauth.Profile) (*AuthOutput, error) {
	if profile.Email == "" {
		return nil, &OAuthProviderError{Provider: profile.Provider, Message: "no email available"}
	}

	user, err := uc.resolve(ctx, profile)
	if err != nil {
		return nil, err
	}

	token, err := uc.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Token: token, User: user}, nil
}

// resolve finds the user by email or creates one. The email is the only join
// key: an existing record is reused as-is even if its provider fields differ
// (first writer wins). Two concurrent first logins race between "not found"
// and "insert"; the unique index on email makes the loser's insert fail with
// ErrEmailTaken, after which the winner's record is looked up and used.
func (uc *OAuthLoginUseCase) resolve(ctx context.Context, profile oauth.Profile) (*entity.User, error) {
	// Records are stored under the normalized email; look them up the same way.
	email := entity.NormalizeEmail(profile.Email)

	user, err := uc.Users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, err
	}

	user, err = entity.NewOAuthUser(profile.Name, profile.Email, entity.OAuthProvider(profile.Provider), profile.ID)
	if err != nil {
		return nil, &OAuthProviderError{Provider: profile.Provider, Message: err.Error()}
	}

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			return uc.Users.FindByEmail(ctx, email)
		}
		return nil, err
	}

	return user, nil
}
