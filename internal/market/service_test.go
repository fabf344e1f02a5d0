package market_test

import (
	"errors"
	"testing"

	"github.com/mintbay/marketplace/internal/bank"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/market"
	"github.com/mintbay/marketplace/internal/registry"
	"github.com/mintbay/marketplace/internal/settlement"
)

const (
	escrow    = "0x000000000000000000000000000000000000dead"
	operator  = "0x000000000000000000000000000000000000beef"
	seller    = "0x00000000000000000000000000000000000000a1"
	buyer     = "0x00000000000000000000000000000000000000b2"
	collector = "0x00000000000000000000000000000000000000c3"

	metadataUri = "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

func newMarket(t *testing.T) (market.Service, bank.Service) {
	t.Helper()

	reg := registry.NewMemoryRegistry()
	l, err := ledger.New(reg, escrow, 1)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	bankService := bank.NewService()
	engine := settlement.NewEngine(l, reg, bankService, operator)

	return market.NewService(l, reg, engine, operator), bankService
}

func TestMintAndList(t *testing.T) {
	t.Run("empty metadata uri", func(t *testing.T) {
		m, _ := newMarket(t)
		if _, err := m.MintAndList(seller, "", 2); !errors.Is(err, market.ErrInvalidUri) {
			t.Errorf("expected ErrInvalidUri, got %v", err)
		}
		if m.GetCurrentAssetCounter() != 0 {
			t.Errorf("expected counter 0, got %d", m.GetCurrentAssetCounter())
		}
	})

	t.Run("price below the floor mints nothing", func(t *testing.T) {
		m, _ := newMarket(t)
		if _, err := m.MintAndList(seller, metadataUri, 1); !errors.Is(err, ledger.ErrInvalidPrice) {
			t.Errorf("expected ErrInvalidPrice, got %v", err)
		}
		if m.GetCurrentAssetCounter() != 0 {
			t.Errorf("expected counter 0, got %d", m.GetCurrentAssetCounter())
		}
	})

	t.Run("identifiers start at zero and increment", func(t *testing.T) {
		m, _ := newMarket(t)

		first, err := m.MintAndList(seller, metadataUri, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := m.MintAndList(seller, metadataUri, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first != 0 || second != 1 {
			t.Errorf("expected identifiers 0 and 1, got %d and %d", first, second)
		}
		if m.GetCurrentAssetCounter() != 2 {
			t.Errorf("expected counter 2, got %d", m.GetCurrentAssetCounter())
		}

		latest, err := m.GetLatestListing()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if latest.AssetId != second {
			t.Errorf("expected latest listing for asset %d, got %d", second, latest.AssetId)
		}
	})
}

func TestSetListingFee(t *testing.T) {
	m, _ := newMarket(t)

	if err := m.SetListingFee(seller, 5); !errors.Is(err, ledger.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if m.GetListingFee() != 1 {
		t.Errorf("expected fee 1, got %d", m.GetListingFee())
	}

	if err := m.SetListingFee(operator, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.GetListingFee() != 5 {
		t.Errorf("expected fee 5, got %d", m.GetListingFee())
	}
}

func TestEventsAreSynchronous(t *testing.T) {
	m, bankService := newMarket(t)

	var sold []event.Sold
	event.AddEventListener(event.SoldEvent, func(msg interface{}) {
		if e, ok := msg.(event.Sold); ok {
			sold = append(sold, e)
		}
	})

	assetId, err := m.MintAndList(seller, metadataUri, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bankService.Deposit(buyer, 2)
	if err := m.ExecuteSale(buyer, assetId, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dispatch is same-goroutine: the event is observable the moment the
	// operation returns.
	if len(sold) != 1 {
		t.Fatalf("expected 1 sold event, got %d", len(sold))
	}
	if sold[0].AssetId != assetId || sold[0].Seller != seller || sold[0].Buyer != buyer || sold[0].Price != 2 {
		t.Errorf("unexpected event payload: %+v", sold[0])
	}
}

// TestMarketplaceLifecycle walks an asset through mint, sale, relist and a
// second sale, checking funds and custody at every step.
func TestMarketplaceLifecycle(t *testing.T) {
	m, bankService := newMarket(t)
	bankService.Deposit(buyer, 10)
	bankService.Deposit(collector, 10)

	assetId, err := m.MintAndList(seller, metadataUri, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if listings := m.AllActiveListings(); len(listings) != 1 {
		t.Fatalf("expected 1 active listing, got %d", len(listings))
	}

	if err := m.ExecuteSale(buyer, assetId, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := bankService.BalanceOf(seller); got != 1 {
		t.Errorf("expected seller balance 1, got %d", got)
	}
	if got := bankService.BalanceOf(operator); got != 1 {
		t.Errorf("expected operator balance 1, got %d", got)
	}
	if listings := m.AllActiveListings(); len(listings) != 0 {
		t.Errorf("expected no active listings, got %d", len(listings))
	}
	if held := m.ListForAccount(buyer); len(held) != 1 {
		t.Errorf("expected buyer to hold 1 asset, got %d", len(held))
	}

	if err := m.Relist(buyer, assetId, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listing, err := m.GetListing(assetId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.Seller != buyer || listing.Price != 4 || !listing.IsListed {
		t.Errorf("unexpected listing after relist: %+v", listing)
	}
	if held := m.ListForAccount(buyer); len(held) != 0 {
		t.Errorf("expected no holdings while relisted, got %d", len(held))
	}

	if err := m.ExecuteSale(collector, assetId, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Buyer paid 2 and received 3 in proceeds.
	if got := bankService.BalanceOf(buyer); got != 11 {
		t.Errorf("expected buyer balance 11, got %d", got)
	}
	if got := bankService.BalanceOf(operator); got != 2 {
		t.Errorf("expected operator balance 2, got %d", got)
	}
	if got := bankService.BalanceOf(collector); got != 6 {
		t.Errorf("expected collector balance 6, got %d", got)
	}

	if err := m.Claim(collector, assetId); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.GetListing(assetId); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound after claim, got %v", err)
	}
	if m.GetCurrentAssetCounter() != 1 {
		t.Errorf("expected counter 1 after claim, got %d", m.GetCurrentAssetCounter())
	}
}
