package request

import (
	"strings"

	"handcrafted_gifts/internal/domain/entities"
)

type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CustomerRequest is bound without `binding` tags: missing fields are reported
// by the domain validation with a single user-facing message.
type CustomerRequest struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	WhatsAppNumber string         `json:"whatsapp_number"`
	Address        AddressRequest `json:"address"`
}

func (r CustomerRequest) ToEntity() entities.CustomerInfo {
	return entities.CustomerInfo{
		Name:           strings.TrimSpace(r.Name),
		Email:          strings.TrimSpace(r.Email),
		Phone:          strings.TrimSpace(r.Phone),
		WhatsAppNumber: strings.TrimSpace(r.WhatsAppNumber),
		Address: entities.Address{
			Street:     strings.TrimSpace(r.Address.Street),
			City:       strings.TrimSpace(r.Address.City),
			State:      strings.TrimSpace(r.Address.State),
			PostalCode: strings.TrimSpace(r.Address.PostalCode),
		},
	}
}

type CustomizationRequest struct {
	Text                string `json:"text"`
	Color               string `json:"color"`
	Size                string `json:"size"`
	Material            string `json:"material"`
	SpecialInstructions string `json:"special_instructions"`
}

func (r CustomizationRequest) ToEntity() entities.Customization {
	return entities.Customization{
		Text:                strings.TrimSpace(r.Text),
		Color:               strings.TrimSpace(r.Color),
		Size:                strings.TrimSpace(r.Size),
		Material:            strings.TrimSpace(r.Material),
		SpecialInstructions: strings.TrimSpace(r.SpecialInstructions),
	}
}
