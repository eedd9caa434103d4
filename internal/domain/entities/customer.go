package entities

import "strings"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func (a Address) String() string {
	return strings.TrimSpace(a.Street) + ", " + strings.TrimSpace(a.City) + ", " + strings.TrimSpace(a.State) + " - " + strings.TrimSpace(a.PostalCode)
}

// CustomerInfo is the buyer's contact and delivery data. Email is optional,
// every other field is required before checkout.
type CustomerInfo struct {
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone"`
	WhatsAppNumber string  `json:"whatsapp_number"`
	Address        Address `json:"address"`
}

// Customization is the per-line personalization chosen by the buyer.
type Customization struct {
	Text                string `json:"text,omitempty"`
	Color               string `json:"color,omitempty"`
	Size                string `json:"size,omitempty"`
	Material            string `json:"material,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

func (c Customization) IsZero() bool {
	return c == Customization{}
}
