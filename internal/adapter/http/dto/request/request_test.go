package request

import (
	"testing"

	"handcrafted_gifts/internal/domain/entities"
)

func TestProductRequest_ToEntity(t *testing.T) {
	r := ProductRequest{Name: "  Rose Hoop ", Category: " Embroidery"}

	p := r.ToEntity()
	if p.Name != "Rose Hoop" || p.Category != entities.CategoryEmbroidery {
		t.Fatalf("unexpected product: %+v", p)
	}
	if !p.InStock {
		t.Fatalf("in_stock must default to true")
	}

	off := false
	r.InStock = &off
	if r.ToEntity().InStock {
		t.Fatalf("explicit in_stock=false must be kept")
	}
}

func TestCreateOrderRequest_ToInput(t *testing.T) {
	r := CreateOrderRequest{
		Customer: CustomerRequest{Name: " Asha ", Address: AddressRequest{City: " Pune "}},
		Items: []OrderItemRequest{
			{ProductID: " p-1 ", Quantity: 2, Customization: CustomizationRequest{Text: " Happy Birthday "}},
		},
		Notes: "  leave at door ",
	}

	in := r.ToInput()
	if in.Customer.Name != "Asha" || in.Customer.Address.City != "Pune" {
		t.Fatalf("customer not trimmed: %+v", in.Customer)
	}
	if len(in.Items) != 1 || in.Items[0].ProductID != "p-1" || in.Items[0].Customization.Text != "Happy Birthday" {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
	if in.Notes != "leave at door" {
		t.Fatalf("unexpected notes %q", in.Notes)
	}
}

func TestPatchOrderRequest_ToPatch(t *testing.T) {
	if _, err := (PatchOrderRequest{}).ToPatch(); err != ErrEmptyOrderPatch {
		t.Fatalf("expected ErrEmptyOrderPatch, got %v", err)
	}

	status := " shipped "
	p, err := PatchOrderRequest{Status: &status}.ToPatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status == nil || *p.Status != entities.OrderStatusShipped {
		t.Fatalf("unexpected status: %+v", p.Status)
	}
}

func TestPatchCheckoutRequest_ToPatch(t *testing.T) {
	qty := 3
	r := PatchCheckoutRequest{
		Quantity:      &qty,
		Customization: &CustomizationRequest{Color: " Red "},
	}

	p := r.ToPatch()
	if p.Quantity == nil || *p.Quantity != 3 {
		t.Fatalf("unexpected quantity: %+v", p.Quantity)
	}
	if p.Customization == nil || p.Customization.Color != "Red" {
		t.Fatalf("unexpected customization: %+v", p.Customization)
	}
	if p.Customer != nil || p.GiftWrap != nil {
		t.Fatalf("absent fields must stay nil: %+v", p)
	}
}
