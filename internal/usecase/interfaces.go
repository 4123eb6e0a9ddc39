package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/queue"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	CountByRole(ctx context.Context, role entity.Role) (int, error)
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, l *entity.Lead) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	FindAll(ctx context.Context) ([]entity.Lead, error)
	FindByTelecaller(ctx context.Context, telecallerID string) ([]entity.Lead, error)
	UpdateAddress(ctx context.Context, l *entity.Lead) error
	UpdateStatus(ctx context.Context, l *entity.Lead) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, statuses ...entity.LeadStatus) (int, error)
	RecentConnected(ctx context.Context, limit int) ([]entity.RecentCall, error)
	CallTrends(ctx context.Context, since time.Time) ([]entity.CallTrend, error)
}

type PasswordHasherInterface interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenServiceInterface mints and verifies the stateless bearer credential.
// Both the local and the OAuth login paths funnel into the same Issue call.
type TokenServiceInterface interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type QueueProducerInterface interface {
	PublishLeadActivity(ctx context.Context, payload queue.LeadActivityPayload) error
}

type EmailService interface {
	SendWelcome(to, name string) error
}
