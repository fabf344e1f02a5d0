package indexer

import (
	"errors"

	"github.com/mintbay/marketplace/internal/dev"
	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/mintbay/marketplace/internal/factory"
	"github.com/mintbay/marketplace/internal/registry"
	"go.uber.org/zap"
)

// ActionIndexer maintains the audit index: one MarketAction document per
// state change, plus the asset catalog documents the read side queries.
type ActionIndexer interface {
	OnListingCreated(el interface{})
	OnSold(el interface{})
	OnSettlement(el interface{})
	OnClaimed(el interface{})
	OnSettlementFailed(el interface{})
}

type actionIndexer struct {
	elastic  elastic_search.Index
	registry registry.AssetRegistry
}

func NewActionIndexer(elastic elastic_search.Index, assetRegistry registry.AssetRegistry) ActionIndexer {
	return actionIndexer{elastic, assetRegistry}
}

func (i actionIndexer) OnListingCreated(el interface{}) {
	listing := el.(event.ListingCreated)

	metadataUri, _ := i.registry.GetMetadata(listing.AssetId)

	i.elastic.AddUpdateRequest(elastic_search.AssetIndex.Get(), factory.CreateAssetFromListing(listing, metadataUri), elastic_search.AssetList)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateListingAction(listing), elastic_search.MarketAction)
	i.elastic.Persist()
}

func (i actionIndexer) OnSold(el interface{}) {
	sold := el.(event.Sold)

	metadataUri, _ := i.registry.GetMetadata(sold.AssetId)

	i.elastic.AddUpdateRequest(elastic_search.AssetIndex.Get(), factory.CreateAssetFromSale(sold, metadataUri), elastic_search.AssetSale)
	i.elastic.Persist()
}

func (i actionIndexer) OnSettlement(el interface{}) {
	settlement := el.(event.Settlement)

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateSaleAction(settlement), elastic_search.MarketAction)
	i.elastic.Persist()
}

func (i actionIndexer) OnClaimed(el interface{}) {
	claimed := el.(event.AssetClaimed)

	i.elastic.AddUpdateRequest(elastic_search.AssetIndex.Get(), factory.CreateBurnedAsset(claimed), elastic_search.AssetClaim)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateClaimAction(claimed), elastic_search.MarketAction)
	i.elastic.Persist()
}

func (i actionIndexer) OnSettlementFailed(el interface{}) {
	failed := el.(event.SettlementFailed)

	zap.L().With(zap.Uint64("assetId", failed.AssetId), zap.String("buyer", failed.Buyer)).
		Warn("ActionIndexer: Recording failed settlement")

	devErr := dev.NewError("settlement", "rollback", errors.New(failed.Reason), map[string]interface{}{
		"assetId": failed.AssetId,
		"buyer":   failed.Buyer,
	})

	i.elastic.Save(elastic_search.DevErrorIndex.Get(), devErr)
}
