package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mintbay/marketplace/internal/api"
	"github.com/mintbay/marketplace/internal/bank"
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/market"
	"github.com/mintbay/marketplace/internal/registry"
	"github.com/mintbay/marketplace/internal/settlement"
)

const (
	escrow   = "0x000000000000000000000000000000000000dead"
	operator = "0x000000000000000000000000000000000000beef"
	seller   = "0x00000000000000000000000000000000000000a1"
	buyer    = "0x00000000000000000000000000000000000000b2"

	metadataUri = "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

type stubActionRepo struct {
	actions []entity.MarketAction
}

func (r stubActionRepo) GetActionsByAsset(assetId uint64) ([]entity.MarketAction, error) {
	return r.actions, nil
}

func (r stubActionRepo) GetSalesByAccount(account string) ([]entity.MarketAction, error) {
	return r.actions, nil
}

func newTestServer(t *testing.T) (api.Server, bank.Service) {
	t.Helper()

	reg := registry.NewMemoryRegistry()
	l, err := ledger.New(reg, escrow, 1)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	bankService := bank.NewService()
	engine := settlement.NewEngine(l, reg, bankService, operator)
	marketService := market.NewService(l, reg, engine, operator)

	return api.NewServer(marketService, stubActionRepo{}), bankService
}

func doJson(t *testing.T, server api.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	return rec
}

func mintAndList(t *testing.T, server api.Server, price uint64) uint64 {
	t.Helper()

	rec := doJson(t, server, "POST", "/assets", map[string]interface{}{
		"caller":      seller,
		"metadataUri": metadataUri,
		"price":       price,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		AssetId uint64 `json:"assetId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return created.AssetId
}

func TestGetFee(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJson(t, server, "GET", "/fee", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Fee uint64 `json:"fee"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Fee != 1 {
		t.Errorf("expected fee 1, got %d", body.Fee)
	}
}

func TestSetFee(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJson(t, server, "PUT", "/fee", map[string]interface{}{"caller": seller, "fee": 5})
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a non-operator caller, got %d", rec.Code)
	}

	rec = doJson(t, server, "PUT", "/fee", map[string]interface{}{"caller": operator, "fee": 5})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMintAndListEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		server, _ := newTestServer(t)

		assetId := mintAndList(t, server, 2)
		if assetId != 0 {
			t.Errorf("expected asset id 0, got %d", assetId)
		}

		rec := doJson(t, server, "GET", "/counter", nil)
		var counter struct {
			Counter uint64 `json:"counter"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &counter); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if counter.Counter != 1 {
			t.Errorf("expected counter 1, got %d", counter.Counter)
		}
	})

	t.Run("price below the floor", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doJson(t, server, "POST", "/assets", map[string]interface{}{
			"caller":      seller,
			"metadataUri": metadataUri,
			"price":       1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestListings(t *testing.T) {
	server, _ := newTestServer(t)
	assetId := mintAndList(t, server, 2)

	rec := doJson(t, server, "GET", "/listings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var listings []entity.Listing
	if err := json.Unmarshal(rec.Body.Bytes(), &listings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listings) != 1 || listings[0].AssetId != assetId || listings[0].Price != 2 {
		t.Errorf("unexpected listings: %+v", listings)
	}

	rec = doJson(t, server, "GET", fmt.Sprintf("/listings/%d", assetId), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = doJson(t, server, "GET", "/listings/latest", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = doJson(t, server, "GET", "/listings/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown asset, got %d", rec.Code)
	}

	rec = doJson(t, server, "GET", "/listings/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed asset id, got %d", rec.Code)
	}
}

func TestBuy(t *testing.T) {
	t.Run("wrong amount", func(t *testing.T) {
		server, bankService := newTestServer(t)
		assetId := mintAndList(t, server, 2)
		bankService.Deposit(buyer, 10)

		rec := doJson(t, server, "POST", fmt.Sprintf("/assets/%d/buy", assetId), map[string]interface{}{
			"buyer":   buyer,
			"payment": 1,
		})
		if rec.Code != http.StatusPaymentRequired {
			t.Errorf("expected 402, got %d", rec.Code)
		}
	})

	t.Run("unfunded buyer", func(t *testing.T) {
		server, _ := newTestServer(t)
		assetId := mintAndList(t, server, 2)

		rec := doJson(t, server, "POST", fmt.Sprintf("/assets/%d/buy", assetId), map[string]interface{}{
			"buyer":   buyer,
			"payment": 2,
		})
		if rec.Code != http.StatusPaymentRequired {
			t.Errorf("expected 402, got %d", rec.Code)
		}
	})

	t.Run("self purchase", func(t *testing.T) {
		server, bankService := newTestServer(t)
		assetId := mintAndList(t, server, 2)
		bankService.Deposit(seller, 10)

		rec := doJson(t, server, "POST", fmt.Sprintf("/assets/%d/buy", assetId), map[string]interface{}{
			"buyer":   seller,
			"payment": 2,
		})
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("successful sale", func(t *testing.T) {
		server, bankService := newTestServer(t)
		assetId := mintAndList(t, server, 2)
		bankService.Deposit(buyer, 10)

		rec := doJson(t, server, "POST", fmt.Sprintf("/assets/%d/buy", assetId), map[string]interface{}{
			"buyer":   buyer,
			"payment": 2,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var listing entity.Listing
		if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if listing.IsListed || listing.Custodian != buyer {
			t.Errorf("unexpected listing after sale: %+v", listing)
		}

		rec = doJson(t, server, "GET", fmt.Sprintf("/accounts/%s/assets", buyer), nil)
		var held []entity.Listing
		if err := json.Unmarshal(rec.Body.Bytes(), &held); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(held) != 1 {
			t.Errorf("expected buyer to hold 1 asset, got %d", len(held))
		}
	})
}

func TestRelistAndClaim(t *testing.T) {
	server, bankService := newTestServer(t)
	assetId := mintAndList(t, server, 2)
	bankService.Deposit(buyer, 10)

	rec := doJson(t, server, "POST", fmt.Sprintf("/assets/%d/relist", assetId), map[string]interface{}{
		"caller": seller,
		"price":  4,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 while listed, got %d", rec.Code)
	}

	rec = doJson(t, server, "POST", fmt.Sprintf("/assets/%d/buy", assetId), map[string]interface{}{
		"buyer":   buyer,
		"payment": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJson(t, server, "POST", fmt.Sprintf("/assets/%d/claim", assetId), map[string]interface{}{
		"caller": seller,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a non-owner claim, got %d", rec.Code)
	}

	rec = doJson(t, server, "POST", fmt.Sprintf("/assets/%d/claim", assetId), map[string]interface{}{
		"caller": buyer,
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAssetActions(t *testing.T) {
	server, _ := newTestServer(t)
	assetId := mintAndList(t, server, 2)

	rec := doJson(t, server, "GET", fmt.Sprintf("/assets/%d/actions", assetId), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
