package usecase

import (
	"context"

	"github.com/xavierca1/telecrm/internal/entity"
)

type CreateLeadUseCase struct {
	Leads LeadRepositoryInterface
}

func NewCreateLeadUseCase(leads LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads}
}

// Execute creates a lead owned by the acting telecaller. Only telecallers
// create leads; admins observe but do not own a pipeline.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, actor *entity.User, input CreateLeadInput) (*entity.Lead, error) {
	if actor.Role != entity.RoleTelecaller {
		return nil, &AuthorizationError{Message: "only telecallers can create leads"}
	}

	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead, err := entity.NewLead(input.Name, input.Email, input.Phone, input.Address, actor.ID)
	if err != nil {
		return nil, ValidationErrors{{Field: "lead", Message: err.Error()}}
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}
