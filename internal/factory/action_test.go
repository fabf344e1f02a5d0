package factory_test

import (
	"testing"

	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/mintbay/marketplace/internal/factory"
)

func TestCreateListingAction(t *testing.T) {
	action := factory.CreateListingAction(event.ListingCreated{
		AssetId:   3,
		Custodian: "0x000000000000000000000000000000000000dead",
		Seller:    "0x00000000000000000000000000000000000000a1",
		Price:     2,
		IsListed:  true,
	})

	if action.Action != entity.ListingAction {
		t.Errorf("expected listing action, got %s", action.Action)
	}
	if action.AssetId != 3 || action.Price != 2 {
		t.Errorf("unexpected action: %+v", action)
	}
	if action.From != "0x00000000000000000000000000000000000000a1" || action.To != "0x000000000000000000000000000000000000dead" {
		t.Errorf("unexpected parties: %+v", action)
	}
	if action.Nonce == "" || action.Time.IsZero() {
		t.Errorf("expected nonce and timestamp to be set: %+v", action)
	}
}

func TestCreateSaleAction(t *testing.T) {
	action := factory.CreateSaleAction(event.Settlement{
		AssetId:  3,
		Seller:   "0x00000000000000000000000000000000000000a1",
		Buyer:    "0x00000000000000000000000000000000000000b2",
		Price:    10,
		Fee:      1,
		Proceeds: 9,
	})

	if action.Action != entity.SaleAction || action.Price != 10 || action.Fee != 1 {
		t.Errorf("unexpected action: %+v", action)
	}
	if action.From != "0x00000000000000000000000000000000000000a1" || action.To != "0x00000000000000000000000000000000000000b2" {
		t.Errorf("unexpected parties: %+v", action)
	}
}

func TestActionSlugsAreUnique(t *testing.T) {
	e := event.AssetClaimed{AssetId: 3, Owner: "0x00000000000000000000000000000000000000a1"}

	first := factory.CreateClaimAction(e)
	second := factory.CreateClaimAction(e)

	if first.Slug() == second.Slug() {
		t.Error("expected distinct slugs for repeated actions on one asset")
	}
}
