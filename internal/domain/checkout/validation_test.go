package checkout

import (
	"errors"
	"testing"

	"handcrafted_gifts/internal/domain/entities"

	"github.com/stretchr/testify/require"
)

func completeCustomer() entities.CustomerInfo {
	return entities.CustomerInfo{
		Name:           "Asha Rao",
		Phone:          "+91 98450 00000",
		WhatsAppNumber: "+91 98450 00000",
		Address: entities.Address{
			Street:     "12 MG Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560001",
		},
	}
}

func TestValidateCustomer(t *testing.T) {
	require.NoError(t, ValidateCustomer(completeCustomer()))

	c := completeCustomer()
	c.WhatsAppNumber = "  "
	c.Address.PostalCode = ""
	err := ValidateCustomer(c)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, RequiredFieldsMessage, ve.Message)
	require.Equal(t, []string{"whatsapp_number", "address.postal_code"}, ve.Fields)
}

func TestValidateCustomer_EmailIsOptional(t *testing.T) {
	c := completeCustomer()
	c.Email = ""
	require.NoError(t, ValidateCustomer(c))
}

func TestValidateCustomization(t *testing.T) {
	p := entities.Product{Options: entities.ProductOptions{
		Colors:    []string{"red", "ivory"},
		Sizes:     []string{"S", "M"},
		Materials: []string{"cotton"},
	}}

	require.NoError(t, ValidateCustomization(p, entities.Customization{}))
	require.NoError(t, ValidateCustomization(p, entities.Customization{Color: "ivory", Size: "M", Material: "cotton"}))

	err := ValidateCustomization(p, entities.Customization{Color: "blue", Material: "silk"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, []string{"color", "material"}, ve.Invalid)
	require.Empty(t, ve.Fields)
	require.Contains(t, ve.Error(), "invalid: color, material")
	require.NotContains(t, ve.Error(), "missing")
}
