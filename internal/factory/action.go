package factory

import (
	"time"

	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/nu7hatch/gouuid"
)

func CreateListingAction(e event.ListingCreated) entity.MarketAction {
	return entity.MarketAction{
		AssetId: e.AssetId,
		Action:  entity.ListingAction,
		From:    e.Seller,
		To:      e.Custodian,
		Price:   e.Price,
		Time:    time.Now(),
		Nonce:   nonce(),
	}
}

func CreateSaleAction(e event.Settlement) entity.MarketAction {
	return entity.MarketAction{
		AssetId: e.AssetId,
		Action:  entity.SaleAction,
		From:    e.Seller,
		To:      e.Buyer,
		Price:   e.Price,
		Fee:     e.Fee,
		Time:    time.Now(),
		Nonce:   nonce(),
	}
}

func CreateClaimAction(e event.AssetClaimed) entity.MarketAction {
	return entity.MarketAction{
		AssetId: e.AssetId,
		Action:  entity.ClaimAction,
		From:    e.Owner,
		Time:    time.Now(),
		Nonce:   nonce(),
	}
}

func nonce() string {
	u, _ := uuid.NewV4()
	return u.String()
}
