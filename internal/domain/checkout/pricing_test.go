package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPricing_Compute(t *testing.T) {
	p := DefaultPricing()

	tests := []struct {
		name      string
		basePrice int64
		quantity  int
		giftWrap  bool
		want      int64
		delivery  int64
	}{
		{name: "above threshold ships free", basePrice: 899, quantity: 2, want: 1798},
		{name: "gift wrap and delivery below threshold", basePrice: 199, quantity: 1, giftWrap: true, want: 299, delivery: 50},
		{name: "exactly at threshold ships free", basePrice: 250, quantity: 2, want: 500},
		{name: "gift wrap pushes subtotal over threshold", basePrice: 460, quantity: 1, giftWrap: true, want: 510},
		{name: "quantity below one is priced as one", basePrice: 100, quantity: 0, want: 150, delivery: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Compute(decimal.NewFromInt(tt.basePrice), tt.quantity, tt.giftWrap)
			require.True(t, got.Total.Equal(decimal.NewFromInt(tt.want)), "total=%s", got.Total)
			require.True(t, got.DeliveryFee.Equal(decimal.NewFromInt(tt.delivery)), "delivery=%s", got.DeliveryFee)
		})
	}
}

func TestPricing_ComputeIsDeterministic(t *testing.T) {
	p := DefaultPricing()
	price := decimal.RequireFromString("349.99")
	a := p.Compute(price, 3, true)
	b := p.Compute(price, 3, true)
	require.True(t, a.Total.Equal(b.Total))
	require.Equal(t, "1099.97", a.Total.String())
}

func TestAmountMinorUnits(t *testing.T) {
	require.Equal(t, int64(29900), AmountMinorUnits(decimal.NewFromInt(299)))
	require.Equal(t, int64(34999), AmountMinorUnits(decimal.RequireFromString("349.99")))
}
