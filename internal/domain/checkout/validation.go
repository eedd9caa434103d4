package checkout

import (
	"strings"

	"handcrafted_gifts/internal/domain/entities"
)

// ValidateCustomer requires name, phone, WhatsApp number and the full address.
// Email is optional. Any gap yields one aggregate error.
func ValidateCustomer(c entities.CustomerInfo) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"phone", c.Phone},
		{"whatsapp_number", c.WhatsAppNumber},
		{"address.street", c.Address.Street},
		{"address.city", c.Address.City},
		{"address.state", c.Address.State},
		{"address.postal_code", c.Address.PostalCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: RequiredFieldsMessage, Fields: missing}
	}
	return nil
}

// ValidateCustomization checks each chosen option against what the product offers.
// Nothing is required.
func ValidateCustomization(p entities.Product, c entities.Customization) error {
	var invalid []string
	if !entities.Offers(p.Options.Colors, c.Color) {
		invalid = append(invalid, "color")
	}
	if !entities.Offers(p.Options.Sizes, c.Size) {
		invalid = append(invalid, "size")
	}
	if !entities.Offers(p.Options.Materials, c.Material) {
		invalid = append(invalid, "material")
	}
	if len(invalid) > 0 {
		return &ValidationError{Message: "Selected option is not offered for this product", Invalid: invalid}
	}
	return nil
}
