package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/telecrm/internal/entity"
)

// LeadQueryUseCase covers the read side: single lead, role-scoped listing and
// the admin dashboard stats.
type LeadQueryUseCase struct {
	Leads LeadRepositoryInterface
	Users UserRepositoryInterface
}

func NewLeadQueryUseCase(leads LeadRepositoryInterface, users UserRepositoryInterface) *LeadQueryUseCase {
	return &LeadQueryUseCase{Leads: leads, Users: users}
}

// Get returns one lead. Reads are allowed to the owner or to any admin,
// unlike writes which always require ownership.
func (uc *LeadQueryUseCase) Get(ctx context.Context, actor *entity.User, id string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "lead", ID: id}
		}
		return nil, err
	}

	if !lead.OwnedBy(actor.ID) && actor.Role != entity.RoleAdmin {
		return nil, ErrNotOwner()
	}

	return lead, nil
}

// List is scoped by role: telecallers see only their own pipeline, admins
// see everything.
func (uc *LeadQueryUseCase) List(ctx context.Context, actor *entity.User) ([]entity.Lead, error) {
	if actor.Role == entity.RoleAdmin {
		return uc.Leads.FindAll(ctx)
	}
	return uc.Leads.FindByTelecaller(ctx, actor.ID)
}

// Stats builds the admin dashboard numbers: telecaller headcount, calls made,
// customers contacted, the ten latest connected calls and a per-day trend for
// the trailing week.
func (uc *LeadQueryUseCase) Stats(ctx context.Context, actor *entity.User) (*entity.LeadStats, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, &AuthorizationError{Message: "admin role required"}
	}

	telecallers, err := uc.Users.CountByRole(ctx, entity.RoleTelecaller)
	if err != nil {
		return nil, err
	}

	calls, err := uc.Leads.CountByStatus(ctx, entity.StatusConnected)
	if err != nil {
		return nil, err
	}

	customers, err := uc.Leads.CountByStatus(ctx, entity.StatusConnected, entity.StatusNotConnected)
	if err != nil {
		return nil, err
	}

	recent, err := uc.Leads.RecentConnected(ctx, 10)
	if err != nil {
		return nil, err
	}

	trends, err := uc.Leads.CallTrends(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &entity.LeadStats{
		TotalTelecallers: telecallers,
		TotalCalls:       calls,
		TotalCustomers:   customers,
		RecentCalls:      recent,
		CallTrends:       trends,
	}, nil
}
