package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/security"
	"github.com/xavierca1/telecrm/internal/usecase"
)

func TestRegisterUserSuccess(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockEmailService)

	var stored *entity.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.User)
		}).
		Return(nil)
	mailer.On("SendWelcome", "ana@example.com", "Ana").Return(nil)

	uc := usecase.NewRegisterUserUseCase(users, security.NewHasher(4), staticTokens{}, mailer)

	output, err := uc.Execute(context.Background(), usecase.RegisterInput{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "secret123",
		Role:     entity.RoleTelecaller,
	})

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, "ana@example.com", stored.Email)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "plaintext must never reach the store")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	assert.Equal(t, "tok-"+stored.ID, output.Token)
	mailer.AssertCalled(t, "SendWelcome", "ana@example.com", "Ana")
}

func TestRegisterUserEmailTakenIsConflict(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailTaken)

	uc := usecase.NewRegisterUserUseCase(users, security.NewHasher(4), staticTokens{}, nil)

	_, err := uc.Execute(context.Background(), usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	var conflict *usecase.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRegisterUserValidation(t *testing.T) {
	uc := usecase.NewRegisterUserUseCase(new(MockUserRepository), security.NewHasher(4), staticTokens{}, nil)

	_, err := uc.Execute(context.Background(), usecase.RegisterInput{
		Name:     "",
		Email:    "not-an-email",
		Password: "123",
	})

	var verrs usecase.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegisterUserWelcomeMailFailureDoesNotFailRegistration(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer := new(MockEmailService)
	mailer.On("SendWelcome", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := usecase.NewRegisterUserUseCase(users, security.NewHasher(4), staticTokens{}, mailer)

	output, err := uc.Execute(context.Background(), usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, output.Token)
}
