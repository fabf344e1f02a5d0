package indexer

import (
	"encoding/json"

	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/mintbay/marketplace/internal/messenger"
	"github.com/mintbay/marketplace/internal/metadata"
	"github.com/mintbay/marketplace/internal/repository"
	"go.uber.org/zap"
)

type MetadataIndexer interface {
	TriggerMetadataRefresh(el interface{})

	RefreshMetadata(assetId uint64) (*entity.Asset, error)
}

type metadataIndexer struct {
	elastic         elastic_search.Index
	assetRepo       repository.AssetRepository
	messageService  messenger.MessageService
	metadataService metadata.Service
}

func NewMetadataIndexer(
	elastic elastic_search.Index,
	assetRepo repository.AssetRepository,
	messageService messenger.MessageService,
	metadataService metadata.Service,
) MetadataIndexer {
	i := metadataIndexer{elastic, assetRepo, messageService, metadataService}

	event.AddEventListener(event.ListingCreatedEvent, i.TriggerMetadataRefresh)

	return i
}

func (i metadataIndexer) TriggerMetadataRefresh(el interface{}) {
	listing := el.(event.ListingCreated)

	msgJson, _ := json.Marshal(messenger.Asset{AssetId: listing.AssetId})
	if err := i.messageService.SendMessage(messenger.MetadataRefresh, msgJson); err != nil {
		zap.L().Error("Failed to queue metadata refresh")
		return
	}
	zap.L().With(zap.Uint64("assetId", listing.AssetId)).Info("Trigger MetaData Refresh")
}

func (i metadataIndexer) RefreshMetadata(assetId uint64) (*entity.Asset, error) {
	zap.L().With(zap.Uint64("assetId", assetId)).Info("Asset Refresh Metadata")

	asset, err := i.assetRepo.GetAsset(assetId)
	if err != nil {
		return nil, err
	}

	data, err := i.metadataService.FetchMetadata(asset.MetadataUri)
	if err != nil {
		zap.L().With(
			zap.Error(err),
			zap.Uint64("assetId", assetId),
			zap.String("metadataUri", asset.MetadataUri),
		).Warn("Failed to get asset metadata")

		asset.HasMetadata = false
		asset.MetadataError = err.Error()
	} else {
		asset.HasMetadata = true
		asset.MetadataError = ""
		asset.Metadata = data
	}

	i.elastic.AddUpdateRequest(elastic_search.AssetIndex.Get(), *asset, elastic_search.AssetMetadata)
	i.elastic.Persist()

	return asset, nil
}
