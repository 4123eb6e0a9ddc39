package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/queue"
	"github.com/xavierca1/telecrm/internal/usecase"
)

func telecaller(t *testing.T, id string) *entity.User {
	t.Helper()
	user, err := entity.NewLocalUser("Ana", id+"@example.com", "$2a$10$hash", entity.RoleTelecaller)
	assert.NoError(t, err)
	user.ID = id
	return user
}

func admin(t *testing.T) *entity.User {
	t.Helper()
	user, err := entity.NewLocalUser("Boss", "boss@example.com", "$2a$10$hash", entity.RoleAdmin)
	assert.NoError(t, err)
	user.ID = "adm-1"
	return user
}

func leadOwnedBy(t *testing.T, telecallerID string) *entity.Lead {
	t.Helper()
	lead, err := entity.NewLead("Maria", "maria@example.com", "11999990000", "Rua A, 123", telecallerID)
	assert.NoError(t, err)
	return lead
}

func TestCreateLeadSuccess(t *testing.T) {
	leads := new(MockLeadRepository)

	var stored *entity.Lead
	leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.Lead)
		}).
		Return(nil)

	uc := usecase.NewCreateLeadUseCase(leads)
	lead, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), usecase.CreateLeadInput{
		Name:    "Maria",
		Email:   "maria@example.com",
		Phone:   "11999990000",
		Address: "Rua A, 123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tc-1", lead.TelecallerID, "ownership comes from the actor, not the input")
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Same(t, lead, stored)
}

func TestCreateLeadRejectsAdmin(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := usecase.NewCreateLeadUseCase(leads)

	_, err := uc.Execute(context.Background(), admin(t), usecase.CreateLeadInput{
		Name:    "Maria",
		Email:   "maria@example.com",
		Phone:   "11999990000",
		Address: "Rua A, 123",
	})

	var authz *usecase.AuthorizationError
	assert.ErrorAs(t, err, &authz)
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateAddressOwnerOnly(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("UpdateAddress", mock.Anything, lead).Return(nil)

	uc := usecase.NewUpdateLeadAddressUseCase(leads)

	updated, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID, usecase.UpdateLeadAddressInput{Address: "Av. B, 456"})
	assert.NoError(t, err)
	assert.Equal(t, "Av. B, 456", updated.Address)

	_, err = uc.Execute(context.Background(), telecaller(t, "tc-2"), lead.ID, usecase.UpdateLeadAddressInput{Address: "Av. C"})
	var authz *usecase.AuthorizationError
	assert.ErrorAs(t, err, &authz)
}

func TestUpdateAddressNoAdminBypass(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	uc := usecase.NewUpdateLeadAddressUseCase(leads)
	_, err := uc.Execute(context.Background(), admin(t), lead.ID, usecase.UpdateLeadAddressInput{Address: "Av. B"})

	var authz *usecase.AuthorizationError
	assert.ErrorAs(t, err, &authz)
	leads.AssertNotCalled(t, "UpdateAddress", mock.Anything, mock.Anything)
}

func TestUpdateLeadMissingIsNotFound(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewUpdateLeadAddressUseCase(leads)
	_, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), "missing", usecase.UpdateLeadAddressInput{Address: "Av. B"})

	var nf *usecase.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpdateStatusConnectedPublishesActivity(t *testing.T) {
	actor := telecaller(t, "tc-1")
	lead := leadOwnedBy(t, "tc-1")

	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("UpdateStatus", mock.Anything, lead).Return(nil)

	producer := new(MockQueueProducer)
	var payload queue.LeadActivityPayload
	producer.On("PublishLeadActivity", mock.Anything, mock.AnythingOfType("queue.LeadActivityPayload")).
		Run(func(args mock.Arguments) {
			payload = args.Get(1).(queue.LeadActivityPayload)
		}).
		Return(nil)

	uc := usecase.NewUpdateLeadStatusUseCase(leads, producer)
	updated, err := uc.Execute(context.Background(), actor, lead.ID, usecase.UpdateLeadStatusInput{
		Status:   entity.StatusConnected,
		Response: entity.ResponseInterested,
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated.CallDate)
	assert.Equal(t, lead.ID, payload.LeadID)
	assert.Equal(t, "connected", payload.Status)
	assert.Equal(t, actor.Email, payload.TelecallerEmail)
	assert.Equal(t, updated.CallDate, payload.CallDate)
}

func TestUpdateStatusNotConnectedDoesNotPublish(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("UpdateStatus", mock.Anything, lead).Return(nil)

	producer := new(MockQueueProducer)

	uc := usecase.NewUpdateLeadStatusUseCase(leads, producer)
	_, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID, usecase.UpdateLeadStatusInput{
		Status:   entity.StatusNotConnected,
		Response: entity.ResponseRNR,
	})

	assert.NoError(t, err)
	producer.AssertNotCalled(t, "PublishLeadActivity", mock.Anything, mock.Anything)
}

func TestUpdateStatusPublishFailureIsSwallowed(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("UpdateStatus", mock.Anything, lead).Return(nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadActivity", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := usecase.NewUpdateLeadStatusUseCase(leads, producer)
	updated, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID, usecase.UpdateLeadStatusInput{
		Status:   entity.StatusConnected,
		Response: entity.ResponseDiscussed,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusConnected, updated.Status)
}

func TestUpdateStatusInvalidEnumNeverHitsStore(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	uc := usecase.NewUpdateLeadStatusUseCase(leads, new(MockQueueProducer))
	_, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID, usecase.UpdateLeadStatusInput{
		Status:   "lost",
		Response: entity.ResponseBusy,
	})

	var verrs usecase.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, entity.StatusNew, lead.Status)
	leads.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

// A lead deleted between the ownership read and the write must surface as a
// not-found, never as an internal error.
func TestUpdateStatusLeadVanishedAfterReadIsNotFound(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("UpdateStatus", mock.Anything, lead).Return(entity.ErrLeadNotFound)

	uc := usecase.NewUpdateLeadStatusUseCase(leads, new(MockQueueProducer))
	_, err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID, usecase.UpdateLeadStatusInput{
		Status:   entity.StatusConnected,
		Response: entity.ResponseBusy,
	})

	var nf *usecase.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteLeadVanishedAfterReadIsNotFound(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("Delete", mock.Anything, lead.ID).Return(entity.ErrLeadNotFound)

	uc := usecase.NewDeleteLeadUseCase(leads)
	err := uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID)

	var nf *usecase.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteLeadOwnerOnly(t *testing.T) {
	lead := leadOwnedBy(t, "tc-1")
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("Delete", mock.Anything, lead.ID).Return(nil)

	uc := usecase.NewDeleteLeadUseCase(leads)

	assert.NoError(t, uc.Execute(context.Background(), telecaller(t, "tc-1"), lead.ID))

	err := uc.Execute(context.Background(), telecaller(t, "tc-2"), lead.ID)
	var authz *usecase.AuthorizationError
	assert.ErrorAs(t, err, &authz)

	err = uc.Execute(context.Background(), admin(t), lead.ID)
	assert.ErrorAs(t, err, &authz)
}
