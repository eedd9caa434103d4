package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMissingBusinessNumber = errors.New("direct message number not configured")

// FormatOrderMessage renders the draft as the chat message a buyer sends to
// order without paying online.
func FormatOrderMessage(d Draft, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Hi! I'd like to order:\n\n")
	fmt.Fprintf(&b, "Product: %s\n", d.Product.Name)
	fmt.Fprintf(&b, "Quantity: %d\n", d.Quantity)
	if d.Product.Customizable {
		c := d.Customization
		fmt.Fprintf(&b, "Customization: %s\n", c.Text)
		fmt.Fprintf(&b, "Color: %s\n", c.Color)
		fmt.Fprintf(&b, "Size: %s\n", c.Size)
		fmt.Fprintf(&b, "Material: %s\n", c.Material)
		fmt.Fprintf(&b, "Special Instructions: %s\n", c.SpecialInstructions)
	}
	if d.GiftWrap {
		b.WriteString("Gift Wrap: Yes\n")
	}
	fmt.Fprintf(&b, "\nTotal: ₹%s\n\n", total.String())
	b.WriteString("My Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", d.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", d.Customer.Phone)
	fmt.Fprintf(&b, "WhatsApp: %s\n", d.Customer.WhatsAppNumber)
	fmt.Fprintf(&b, "Email: %s\n", d.Customer.Email)
	fmt.Fprintf(&b, "Address: %s", d.Customer.Address.String())
	return b.String()
}

// WhatsAppLinker builds wa.me click-to-chat links for a business number.
type WhatsAppLinker struct {
	Number string
}

var _ DirectMessageLinker = WhatsAppLinker{}

func (l WhatsAppLinker) BuildLink(text string) (string, error) {
	number := DigitsOnly(l.Number)
	if number == "" {
		return "", ErrMissingBusinessNumber
	}
	return "https://wa.me/" + number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20"), nil
}

// DigitsOnly strips everything but 0-9 from a phone number.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
