package entity_test

import (
	"testing"

	"github.com/mintbay/marketplace/internal/entity"
)

func TestCreateAssetSlug(t *testing.T) {
	if got := entity.CreateAssetSlug(42); got != "asset-42" {
		t.Errorf("expected asset-42, got %s", got)
	}
}

func TestCreateMarketActionSlug(t *testing.T) {
	first := entity.CreateMarketActionSlug(1, "sale", "nonce-a")
	second := entity.CreateMarketActionSlug(1, "sale", "nonce-b")

	if first == second {
		t.Error("expected distinct slugs for distinct nonces")
	}
	if first != entity.CreateMarketActionSlug(1, "sale", "nonce-a") {
		t.Error("expected the slug to be deterministic")
	}
}
