package usecase

import "github.com/xavierca1/telecrm/internal/entity"

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthOutput is the shared result of every successful authentication path,
// local or federated.
type AuthOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateLeadAddressInput deliberately carries only the address; any other
// field in the request body is dropped at decode time.
type UpdateLeadAddressInput struct {
	Address string `json:"address"`
}

type UpdateLeadStatusInput struct {
	Status   entity.LeadStatus   `json:"status"`
	Response entity.LeadResponse `json:"response"`
}
