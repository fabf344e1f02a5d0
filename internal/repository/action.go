package repository

import (
	"encoding/json"

	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

type ActionRepository interface {
	GetActionsByAsset(assetId uint64) ([]entity.MarketAction, error)
	GetSalesByAccount(account string) ([]entity.MarketAction, error)
}

type actionRepository struct {
	elastic elastic_search.Index
}

func NewActionRepository(elastic elastic_search.Index) ActionRepository {
	return actionRepository{elastic}
}

func (r actionRepository) GetActionsByAsset(assetId uint64) ([]entity.MarketAction, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(elastic.NewTermQuery("assetId", assetId)).
		Sort("time", true).
		Size(100))

	return r.findMany(result, err)
}

func (r actionRepository) GetSalesByAccount(account string) ([]entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	).Should(
		elastic.NewTermQuery("from.keyword", account),
		elastic.NewTermQuery("to.keyword", account),
	).MinimumNumberShouldMatch(1)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("time", true).
		Size(100))

	return r.findMany(result, err)
}

func (r actionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, nil
}
