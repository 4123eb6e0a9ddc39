package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/telecrm/internal/entity"
)

type LoginUseCase struct {
	Users  UserRepositoryInterface
	Hasher PasswordHasherInterface
	Tokens TokenServiceInterface
}

func NewLoginUseCase(
	users UserRepositoryInterface,
	hasher PasswordHasherInterface,
	tokens TokenServiceInterface,
) *LoginUseCase {
	return &LoginUseCase{Users: users, Hasher: hasher, Tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	if errs := ValidateLoginInput(input); len(errs) > 0 {
		return nil, errs
	}

	// Lookup must use the same form the record was stored under.
	user, err := uc.Users.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, ErrInvalidCredentials()
		}
		return nil, err
	}

	// OAuth-only users have no hash and can never log in locally.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials()
	}

	if err := uc.Hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials()
	}

	token, err := uc.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Token: token, User: user}, nil
}
