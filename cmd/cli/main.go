package main

import (
	"os"

	"github.com/mintbay/marketplace/internal/config"
	"github.com/mintbay/marketplace/internal/config/dic"
	"github.com/mintbay/marketplace/internal/messenger"
	"github.com/mintbay/marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container        *dic.Container
	assetRepo        repository.AssetRepository
	actionRepo       repository.ActionRepository
	messengerService messenger.MessageService
)

func main() {
	config.Init("cli")

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	assetRepo = container.GetAssetRepo()
	actionRepo = container.GetActionRepo()
	messengerService = container.GetMessenger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "asset",
				Usage:  "Show the indexed document for an asset",
				Action: showAsset,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "id", Value: 0, Usage: "Asset identifier"},
				},
			},
			{
				Name:   "actions",
				Usage:  "Show the audit trail for an asset",
				Action: showActions,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "id", Value: 0, Usage: "Asset identifier"},
				},
			},
			{
				Name:   "sales",
				Usage:  "Show sales involving an account",
				Action: showSales,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "account", Value: "", Usage: "Account address"},
				},
			},
			{
				Name:   "queue",
				Usage:  "Show the metadata refresh queue size",
				Action: showQueueSize,
			},
			{
				Name:   "simulate",
				Usage:  "Run a full mint, sale and relist cycle against an in-memory ledger",
				Action: simulate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func showAsset(c *cli.Context) error {
	asset, err := assetRepo.GetAsset(c.Uint64("id"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the asset")
		return nil
	}

	zap.L().With(
		zap.Uint64("id", asset.Id),
		zap.String("owner", asset.Owner),
		zap.String("seller", asset.Seller),
		zap.Uint64("price", asset.Price),
		zap.Bool("isListed", asset.IsListed),
		zap.Bool("hasMetadata", asset.HasMetadata),
	).Info("Asset")

	return nil
}

func showActions(c *cli.Context) error {
	actions, err := actionRepo.GetActionsByAsset(c.Uint64("id"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the actions")
		return nil
	}

	for _, action := range actions {
		zap.L().With(
			zap.Uint64("assetId", action.AssetId),
			zap.String("action", string(action.Action)),
			zap.String("from", action.From),
			zap.String("to", action.To),
			zap.Uint64("price", action.Price),
			zap.Uint64("fee", action.Fee),
			zap.Time("time", action.Time),
		).Info("Action")
	}

	return nil
}

func showSales(c *cli.Context) error {
	sales, err := actionRepo.GetSalesByAccount(c.String("account"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the sales")
		return nil
	}

	for _, sale := range sales {
		zap.L().With(
			zap.Uint64("assetId", sale.AssetId),
			zap.String("seller", sale.From),
			zap.String("buyer", sale.To),
			zap.Uint64("price", sale.Price),
			zap.Uint64("fee", sale.Fee),
		).Info("Sale")
	}

	return nil
}

func showQueueSize(c *cli.Context) error {
	size, err := messengerService.GetQueueSize(messenger.MetadataRefresh)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the queue size")
		return nil
	}

	zap.S().Infof("Metadata refresh queue size: %d", *size)

	return nil
}

func simulate(c *cli.Context) error {
	marketService := container.GetMarket()
	bankService := container.GetBank()

	operator := config.Get().OperatorAddress
	seller := "0x00000000000000000000000000000000000000a1"
	buyer := "0x00000000000000000000000000000000000000b2"
	collector := "0x00000000000000000000000000000000000000c3"

	bankService.Deposit(buyer, 10)
	bankService.Deposit(collector, 10)

	assetId, err := marketService.MintAndList(seller, "ipfs://QmSimulated", 2)
	if err != nil {
		return err
	}
	zap.S().Infof("Minted and listed asset %d at price 2", assetId)

	if err := marketService.ExecuteSale(buyer, assetId, 2); err != nil {
		return err
	}
	zap.S().Infof("Sold asset %d: seller balance %d, operator balance %d",
		assetId, bankService.BalanceOf(seller), bankService.BalanceOf(operator))

	if err := marketService.Relist(buyer, assetId, 4); err != nil {
		return err
	}
	zap.S().Infof("Relisted asset %d at price 4", assetId)

	if err := marketService.ExecuteSale(collector, assetId, 4); err != nil {
		return err
	}
	zap.S().Infof("Sold asset %d again: buyer balance %d, operator balance %d",
		assetId, bankService.BalanceOf(buyer), bankService.BalanceOf(operator))

	return nil
}
