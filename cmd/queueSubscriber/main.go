package main

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintbay/marketplace/internal/config"
	"github.com/mintbay/marketplace/internal/config/dic"
	"github.com/mintbay/marketplace/internal/indexer"
	"github.com/mintbay/marketplace/internal/messenger"
	"go.uber.org/zap"
)

var (
	messageService  messenger.MessageService
	metadataIndexer indexer.MetadataIndexer
)

func main() {
	config.Init("queueSubscriber")

	container, err := dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	messageService = container.GetMessenger()
	metadataIndexer = container.GetMetadataIndexer()

	pollMetadataRefresh()
}

func pollMetadataRefresh() {
	zap.L().Info("Subscribing to metadata refresh")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.MetadataRefresh, messages)

	for message := range messages {
		var data messenger.Asset
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read message")
			continue
		}
		zap.L().With(zap.Uint64("assetId", data.AssetId)).Info("Metadata refresh")

		if _, err := metadataIndexer.RefreshMetadata(data.AssetId); err != nil {
			zap.L().With(zap.Uint64("assetId", data.AssetId), zap.Error(err)).Error("Metadata refresh failed")
		} else {
			zap.L().With(zap.Uint64("assetId", data.AssetId)).Info("Metadata refresh success")
		}

		if err := messageService.DeleteMessage(messenger.MetadataRefresh, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
