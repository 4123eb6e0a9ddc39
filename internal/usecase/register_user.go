package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/telecrm/internal/entity"
)

type RegisterUserUseCase struct {
	Users  UserRepositoryInterface
	Hasher PasswordHasherInterface
	Tokens TokenServiceInterface
	Mailer EmailService
}

func NewRegisterUserUseCase(
	users UserRepositoryInterface,
	hasher PasswordHasherInterface,
	tokens TokenServiceInterface,
	mailer EmailService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		Users:  users,
		Hasher: hasher,
		Tokens: tokens,
		Mailer: mailer,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, errs
	}

	// Hash before the record is handed to the store: there is no state in
	// which a plaintext password is visible to lookups.
	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewLocalUser(input.Name, input.Email, hash, input.Role)
	if err != nil {
		return nil, ValidationErrors{{Field: "user", Message: err.Error()}}
	}

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			return nil, &ConflictError{Message: "email already registered"}
		}
		return nil, err
	}

	token, err := uc.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if uc.Mailer != nil {
		if err := uc.Mailer.SendWelcome(user.Email, user.Name); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}

	return &AuthOutput{Token: token, User: user}, nil
}
