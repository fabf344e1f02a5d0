package messenger

import (
	"encoding/json"

	"github.com/mintbay/marketplace/internal/event"
	"go.uber.org/zap"
)

// EventPublisher fans marketplace events out to the queues for external
// subscribers.
type EventPublisher interface {
	OnListingCreated(el interface{})
	OnSold(el interface{})
}

type eventPublisher struct {
	messageService MessageService
}

func NewEventPublisher(messageService MessageService) EventPublisher {
	return eventPublisher{messageService}
}

func (p eventPublisher) OnListingCreated(el interface{}) {
	listing := el.(event.ListingCreated)

	msgJson, _ := json.Marshal(listing)
	if err := p.messageService.SendMessage(MarketListed, msgJson); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", listing.AssetId)).Error("Failed to publish listing")
	}
}

func (p eventPublisher) OnSold(el interface{}) {
	sold := el.(event.Sold)

	msgJson, _ := json.Marshal(sold)
	if err := p.messageService.SendMessage(MarketSold, msgJson); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", sold.AssetId)).Error("Failed to publish sale")
	}
}
