package checkout

import "github.com/shopspring/decimal"

// Pricing holds the conditional surcharges applied on top of the item subtotal.
type Pricing struct {
	GiftWrapFee           decimal.Decimal
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		GiftWrapFee:           decimal.NewFromInt(50),
		DeliveryFee:           decimal.NewFromInt(50),
		FreeDeliveryThreshold: decimal.NewFromInt(500),
	}
}

// Totals is the breakdown of a computed order total.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	GiftWrapFee decimal.Decimal `json:"gift_wrap_fee"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Compute prices a single product line.
func (p Pricing) Compute(basePrice decimal.Decimal, quantity int, giftWrap bool) Totals {
	if quantity < 1 {
		quantity = 1
	}
	return p.ForSubtotal(basePrice.Mul(decimal.NewFromInt(int64(quantity))), giftWrap)
}

// ForSubtotal applies the surcharges to an already summed item subtotal.
// The gift wrap fee counts towards the free delivery threshold.
func (p Pricing) ForSubtotal(subtotal decimal.Decimal, giftWrap bool) Totals {
	t := Totals{
		Subtotal:    subtotal,
		GiftWrapFee: decimal.Zero,
		DeliveryFee: decimal.Zero,
	}
	beforeDelivery := subtotal
	if giftWrap {
		t.GiftWrapFee = p.GiftWrapFee
		beforeDelivery = beforeDelivery.Add(p.GiftWrapFee)
	}
	if beforeDelivery.LessThan(p.FreeDeliveryThreshold) {
		t.DeliveryFee = p.DeliveryFee
	}
	t.Total = beforeDelivery.Add(t.DeliveryFee)
	return t
}

// AmountMinorUnits converts a currency amount to its minor unit (paise, cents).
func AmountMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
