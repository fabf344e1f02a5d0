package dic

import (
	"github.com/mintbay/marketplace/internal/api"
	"github.com/mintbay/marketplace/internal/bank"
	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/indexer"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/market"
	"github.com/mintbay/marketplace/internal/messenger"
	"github.com/mintbay/marketplace/internal/registry"
	"github.com/mintbay/marketplace/internal/repository"
	"github.com/mintbay/marketplace/internal/settlement"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetRegistry() registry.AssetRegistry {
	return c.ctn.Get("registry").(registry.AssetRegistry)
}

func (c *Container) GetBank() bank.Service {
	return c.ctn.Get("bank").(bank.Service)
}

func (c *Container) GetLedger() *ledger.Ledger {
	return c.ctn.Get("ledger").(*ledger.Ledger)
}

func (c *Container) GetSettlement() *settlement.Engine {
	return c.ctn.Get("settlement").(*settlement.Engine)
}

func (c *Container) GetMarket() market.Service {
	return c.ctn.Get("market").(market.Service)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetPublisher() messenger.EventPublisher {
	return c.ctn.Get("publisher").(messenger.EventPublisher)
}

func (c *Container) GetAssetRepo() repository.AssetRepository {
	return c.ctn.Get("asset.repo").(repository.AssetRepository)
}

func (c *Container) GetActionRepo() repository.ActionRepository {
	return c.ctn.Get("action.repo").(repository.ActionRepository)
}

func (c *Container) GetActionIndexer() indexer.ActionIndexer {
	return c.ctn.Get("action.indexer").(indexer.ActionIndexer)
}

func (c *Container) GetMetadataIndexer() indexer.MetadataIndexer {
	return c.ctn.Get("metadata.indexer").(indexer.MetadataIndexer)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("api").(api.Server)
}
