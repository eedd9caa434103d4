package checkout

import (
	"handcrafted_gifts/internal/domain/entities"
)

// PendingOrder is the order created by the last payment initiation.
type PendingOrder struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Handle      string `json:"handle"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// Draft is the unpersisted wizard state. It is plain data so it can be stored
// between requests and rehydrated into a Wizard.
type Draft struct {
	Product       entities.Product       `json:"product"`
	Quantity      int                    `json:"quantity"`
	GiftWrap      bool                   `json:"gift_wrap"`
	Customization entities.Customization `json:"customization"`
	Customer      entities.CustomerInfo  `json:"customer"`
	Step          Step                   `json:"step"`
	Busy          bool                   `json:"busy"`
	Pending       *PendingOrder          `json:"pending,omitempty"`
	OrderNumber   string                 `json:"order_number,omitempty"`
}

// NewDraft starts at the customization step for customizable products and at
// the address step otherwise. Options default to the first offered value.
func NewDraft(p entities.Product) Draft {
	d := Draft{Product: p, Quantity: 1, Step: StepAddress}
	if p.Customizable {
		d.Step = StepCustomizing
		d.Customization = entities.Customization{
			Color:    first(p.Options.Colors),
			Size:     first(p.Options.Sizes),
			Material: first(p.Options.Materials),
		}
	}
	return d
}

func (d Draft) Placed() bool {
	return d.Step == StepPlaced
}

// Submission builds the order payload. Customization is dropped for products
// that cannot be customized.
func (d Draft) Submission(pricing Pricing) Submission {
	s := Submission{
		Customer:  d.Customer,
		ProductID: d.Product.ID,
		Quantity:  d.Quantity,
		GiftWrap:  d.GiftWrap,
		Total:     d.Totals(pricing).Total,
	}
	if d.Product.Customizable {
		s.Customization = d.Customization
	}
	return s
}

func (d Draft) Totals(pricing Pricing) Totals {
	return pricing.Compute(d.Product.BasePrice, d.Quantity, d.GiftWrap)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
