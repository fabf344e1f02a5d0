package repository

import (
	"encoding/json"
	"errors"

	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
)

type AssetRepository interface {
	GetAsset(assetId uint64) (*entity.Asset, error)
	GetAssetsBySeller(seller string) ([]entity.Asset, error)
}

type assetRepository struct {
	elastic elastic_search.Index
}

func NewAssetRepository(elastic elastic_search.Index) AssetRepository {
	return assetRepository{elastic}
}

func (r assetRepository) GetAsset(assetId uint64) (*entity.Asset, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AssetIndex.Get()).
		Query(elastic.NewTermQuery("id", assetId)).
		Size(1))

	return r.findOne(result, err)
}

func (r assetRepository) GetAssetsBySeller(seller string) ([]entity.Asset, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("seller.keyword", seller),
		elastic.NewTermQuery("isListed", true),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AssetIndex.Get()).
		Query(query).
		Sort("id", true).
		Size(100))

	return r.findMany(result, err)
}

func (r assetRepository) findOne(results *elastic.SearchResult, err error) (*entity.Asset, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrAssetNotFound
	}

	var asset entity.Asset
	hit := results.Hits.Hits[0]
	if err = json.Unmarshal(hit.Source, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r assetRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Asset, error) {
	assets := make([]entity.Asset, 0)

	if err != nil {
		return assets, err
	}

	for _, hit := range results.Hits.Hits {
		var asset entity.Asset
		if err := json.Unmarshal(hit.Source, &asset); err == nil {
			assets = append(assets, asset)
		}
	}

	return assets, nil
}
