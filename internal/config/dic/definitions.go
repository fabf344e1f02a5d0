package dic

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintbay/marketplace/internal/api"
	"github.com/mintbay/marketplace/internal/bank"
	"github.com/mintbay/marketplace/internal/config"
	"github.com/mintbay/marketplace/internal/elastic_search"
	"github.com/mintbay/marketplace/internal/indexer"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/market"
	"github.com/mintbay/marketplace/internal/messenger"
	"github.com/mintbay/marketplace/internal/metadata"
	"github.com/mintbay/marketplace/internal/registry"
	"github.com/mintbay/marketplace/internal/repository"
	"github.com/mintbay/marketplace/internal/settlement"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewMemoryRegistry(), nil
		},
	},
	{
		Name: "bank",
		Build: func(ctn di.Container) (interface{}, error) {
			return bank.NewService(), nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			stateLedger, err := ledger.New(
				ctn.Get("registry").(registry.AssetRegistry),
				config.Get().EscrowAddress,
				config.Get().ListingFee,
			)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to create ledger")
			}

			return stateLedger, nil
		},
	},
	{
		Name: "settlement",
		Build: func(ctn di.Container) (interface{}, error) {
			return settlement.NewEngine(
				ctn.Get("ledger").(*ledger.Ledger),
				ctn.Get("registry").(registry.AssetRegistry),
				ctn.Get("bank").(bank.Service),
				config.Get().OperatorAddress,
			), nil
		},
	},
	{
		Name: "market",
		Build: func(ctn di.Container) (interface{}, error) {
			return market.NewService(
				ctn.Get("ledger").(*ledger.Ledger),
				ctn.Get("registry").(registry.AssetRegistry),
				ctn.Get("settlement").(*settlement.Engine),
				config.Get().OperatorAddress,
			), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			sess, err := session.NewSession(&aws.Config{
				Region: aws.String(config.Get().Aws.Region),
				Credentials: credentials.NewStaticCredentials(
					config.Get().Aws.AccessKey,
					config.Get().Aws.SecretKey,
					"",
				),
			})
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to create aws session")
			}

			return messenger.NewMessenger(sqs.New(sess)), nil
		},
	},
	{
		Name: "publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewEventPublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "metadata",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.RetryMax = config.Get().MetadataRetries
			client.HTTPClient.Timeout = time.Duration(config.Get().IpfsTimeout) * time.Second
			client.Logger = nil

			return metadata.NewMetadataService(client, ctn.Get("cache").(*cache.Cache)), nil
		},
	},
	{
		Name: "asset.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAssetRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "action.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewActionIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("registry").(registry.AssetRegistry),
			), nil
		},
	},
	{
		Name: "metadata.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewMetadataIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("asset.repo").(repository.AssetRepository),
				ctn.Get("messenger").(messenger.MessageService),
				ctn.Get("metadata").(metadata.Service),
			), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("market").(market.Service),
				ctn.Get("action.repo").(repository.ActionRepository),
			), nil
		},
	},
}
