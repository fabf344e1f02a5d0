package factory

import (
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/event"
)

func CreateAssetFromListing(e event.ListingCreated, metadataUri string) entity.Asset {
	return entity.Asset{
		Id:          e.AssetId,
		MetadataUri: metadataUri,
		Owner:       e.Custodian,
		Seller:      e.Seller,
		Price:       e.Price,
		IsListed:    e.IsListed,
	}
}

func CreateAssetFromSale(e event.Sold, metadataUri string) entity.Asset {
	return entity.Asset{
		Id:          e.AssetId,
		MetadataUri: metadataUri,
		Owner:       e.Buyer,
		Seller:      entity.ZeroAddress,
		Price:       0,
		IsListed:    false,
	}
}

func CreateBurnedAsset(e event.AssetClaimed) entity.Asset {
	return entity.Asset{
		Id:     e.AssetId,
		Owner:  entity.ZeroAddress,
		Seller: entity.ZeroAddress,
		Burned: true,
	}
}
