package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/queue"
)

// findOwnedLead fetches a lead and enforces literal ownership. Admins get no
// bypass here: every mutation requires the acting user to be the telecaller.
func findOwnedLead(ctx context.Context, leads LeadRepositoryInterface, actor *entity.User, id string) (*entity.Lead, error) {
	lead, err := leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "lead", ID: id}
		}
		return nil, err
	}
	if !lead.OwnedBy(actor.ID) {
		return nil, ErrNotOwner()
	}
	return lead, nil
}

// leadWriteErr covers the window where the lead is deleted between the
// ownership read and the write: the zero-row result is still a not-found,
// not an internal error.
func leadWriteErr(err error, id string) error {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &NotFoundError{Resource: "lead", ID: id}
	}
	return err
}

type UpdateLeadAddressUseCase struct {
	Leads LeadRepositoryInterface
}

func NewUpdateLeadAddressUseCase(leads LeadRepositoryInterface) *UpdateLeadAddressUseCase {
	return &UpdateLeadAddressUseCase{Leads: leads}
}

func (uc *UpdateLeadAddressUseCase) Execute(ctx context.Context, actor *entity.User, id string, input UpdateLeadAddressInput) (*entity.Lead, error) {
	lead, err := findOwnedLead(ctx, uc.Leads, actor, id)
	if err != nil {
		return nil, err
	}

	if err := lead.UpdateAddress(input.Address); err != nil {
		return nil, ValidationErrors{{Field: "address", Message: "is required"}}
	}

	if err := uc.Leads.UpdateAddress(ctx, lead); err != nil {
		return nil, leadWriteErr(err, lead.ID)
	}

	return lead, nil
}

type UpdateLeadStatusUseCase struct {
	Leads LeadRepositoryInterface
	Queue QueueProducerInterface
}

func NewUpdateLeadStatusUseCase(leads LeadRepositoryInterface, producer QueueProducerInterface) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Leads: leads, Queue: producer}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, actor *entity.User, id string, input UpdateLeadStatusInput) (*entity.Lead, error) {
	lead, err := findOwnedLead(ctx, uc.Leads, actor, id)
	if err != nil {
		return nil, err
	}

	if err := lead.SetStatus(input.Status, input.Response, time.Now()); err != nil {
		return nil, ValidationErrors{{Field: "status", Message: err.Error()}}
	}

	if err := uc.Leads.UpdateStatus(ctx, lead); err != nil {
		return nil, leadWriteErr(err, lead.ID)
	}

	// Notification is ancillary: a broker hiccup must not fail a call that
	// is already committed.
	if uc.Queue != nil && lead.Status == entity.StatusConnected {
		payload := queue.LeadActivityPayload{
			LeadID:          lead.ID,
			LeadName:        lead.Name,
			LeadPhone:       lead.Phone,
			Status:          string(lead.Status),
			Response:        string(lead.Response),
			TelecallerID:    actor.ID,
			TelecallerName:  actor.Name,
			TelecallerEmail: actor.Email,
			CallDate:        lead.CallDate,
		}
		if err := uc.Queue.PublishLeadActivity(ctx, payload); err != nil {
			log.Printf("lead activity publish failed for %s: %v", lead.ID, err)
		}
	}

	return lead, nil
}

type DeleteLeadUseCase struct {
	Leads LeadRepositoryInterface
}

func NewDeleteLeadUseCase(leads LeadRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Leads: leads}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, actor *entity.User, id string) error {
	lead, err := findOwnedLead(ctx, uc.Leads, actor, id)
	if err != nil {
		return err
	}

	if err := uc.Leads.Delete(ctx, lead.ID); err != nil {
		return leadWriteErr(err, lead.ID)
	}
	return nil
}
