package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	StatusNew          LeadStatus = "new"
	StatusConnected    LeadStatus = "connected"
	StatusNotConnected LeadStatus = "not_connected"
)

func (s LeadStatus) Valid() bool {
	return s == StatusNew || s == StatusConnected || s == StatusNotConnected
}

type LeadResponse string

const (
	ResponseNone        LeadResponse = ""
	ResponseDiscussed   LeadResponse = "discussed"
	ResponseCallback    LeadResponse = "callback"
	ResponseInterested  LeadResponse = "interested"
	ResponseBusy        LeadResponse = "busy"
	ResponseRNR         LeadResponse = "rnr"
	ResponseSwitchedOff LeadResponse = "switched_off"
)

func (r LeadResponse) Valid() bool {
	switch r {
	case ResponseNone, ResponseDiscussed, ResponseCallback, ResponseInterested,
		ResponseBusy, ResponseRNR, ResponseSwitchedOff:
		return true
	}
	return false
}

// Lead is a prospective customer owned by exactly one telecaller.
// TelecallerID is set at creation and never changes.
type Lead struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	Status       LeadStatus   `json:"status"`
	Response     LeadResponse `json:"response,omitempty"`
	TelecallerID string       `json:"telecaller"`
	CallDate     *time.Time   `json:"call_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewLead(name, email, phone, address, telecallerID string) (*Lead, error) {
	lead := &Lead{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		Address:      strings.TrimSpace(address),
		Status:       StatusNew,
		Response:     ResponseNone,
		TelecallerID: telecallerID,
		CreatedAt:    time.Now(),
	}

	if err := lead.validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) validate() error {
	if l.Name == "" {
		return ErrNameRequired
	}
	if l.Email == "" {
		return ErrEmailRequired
	}
	if l.Phone == "" {
		return ErrPhoneRequired
	}
	if l.Address == "" {
		return ErrAddressRequired
	}
	if l.TelecallerID == "" {
		return ErrTelecallerRequired
	}
	return nil
}

// SetStatus moves the lead through the call lifecycle. Any status can follow
// any other; the call date is stamped only when the new status is connected
// and is kept as-is otherwise, including when moving away from connected.
// On an invalid status or response the lead is left untouched.
func (l *Lead) SetStatus(status LeadStatus, response LeadResponse, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !response.Valid() {
		return ErrInvalidResponse
	}

	l.Status = status
	l.Response = response
	if status == StatusConnected {
		l.CallDate = &now
	}
	return nil
}

// UpdateAddress mutates the address and nothing else. Callers that decode a
// full payload must go through here so protected fields cannot be overwritten.
func (l *Lead) UpdateAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressRequired
	}
	l.Address = address
	return nil
}

// OwnedBy reports whether the given user is the lead's telecaller.
func (l *Lead) OwnedBy(userID string) bool {
	return l.TelecallerID == userID
}
