package market

import (
	"errors"
	"sync"

	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/event"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/registry"
	"github.com/mintbay/marketplace/internal/settlement"
	"go.uber.org/zap"
)

var ErrInvalidUri = errors.New("metadata uri must not be empty")

// Service is the public marketplace surface. Every operation runs to
// completion under one mutex: the single-writer model the ledger requires.
// Events are emitted synchronously after the state change commits.
type Service interface {
	MintAndList(caller, metadataUri string, price uint64) (uint64, error)
	Relist(caller string, assetId uint64, price uint64) error
	Claim(caller string, assetId uint64) error
	ExecuteSale(buyer string, assetId uint64, payment uint64) error
	SetListingFee(caller string, newFee uint64) error

	GetListingFee() uint64
	GetListing(assetId uint64) (entity.Listing, error)
	GetLatestListing() (entity.Listing, error)
	AllActiveListings() []entity.Listing
	ListForAccount(account string) []entity.Listing
	GetCurrentAssetCounter() uint64
}

type service struct {
	mu sync.Mutex

	ledger   *ledger.Ledger
	registry registry.AssetRegistry
	engine   *settlement.Engine
	operator string
}

func NewService(stateLedger *ledger.Ledger, assetRegistry registry.AssetRegistry, engine *settlement.Engine, operator string) Service {
	return &service{
		ledger:   stateLedger,
		registry: assetRegistry,
		engine:   engine,
		operator: operator,
	}
}

func (s *service) MintAndList(caller, metadataUri string, price uint64) (uint64, error) {
	s.mu.Lock()
	assetId, listing, err := s.mintAndList(caller, metadataUri, price)
	s.mu.Unlock()

	if err != nil {
		return 0, err
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", caller),
		zap.Uint64("price", price),
	).Info("Market: Mint and list")

	event.EmitEvent(event.ListingCreatedEvent, event.ListingCreated{
		AssetId:   listing.AssetId,
		Custodian: listing.Custodian,
		Seller:    listing.Seller,
		Price:     listing.Price,
		IsListed:  listing.IsListed,
	})

	return assetId, nil
}

func (s *service) mintAndList(caller, metadataUri string, price uint64) (uint64, entity.Listing, error) {
	if metadataUri == "" {
		return 0, entity.Listing{}, ErrInvalidUri
	}

	// The price floor is checked before minting so a rejected listing never
	// leaves a stray asset behind.
	if err := s.ledger.ValidatePrice(price); err != nil {
		return 0, entity.Listing{}, err
	}

	assetId := s.ledger.NextAssetId()

	if err := s.registry.Mint(caller, assetId); err != nil {
		return 0, entity.Listing{}, err
	}

	if err := s.registry.SetMetadata(assetId, metadataUri); err != nil {
		return 0, entity.Listing{}, err
	}

	s.ledger.RecordAcquisition(caller, assetId)

	if err := s.ledger.CreateListing(assetId, caller, price); err != nil {
		return 0, entity.Listing{}, err
	}

	listing, err := s.ledger.GetListing(assetId)

	return assetId, listing, err
}

func (s *service) Relist(caller string, assetId uint64, price uint64) error {
	s.mu.Lock()
	err := s.ledger.Relist(caller, assetId, price)
	var listing entity.Listing
	if err == nil {
		listing, _ = s.ledger.GetListing(assetId)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", caller),
		zap.Uint64("price", price),
	).Info("Market: Relist")

	event.EmitEvent(event.ListingCreatedEvent, event.ListingCreated{
		AssetId:   listing.AssetId,
		Custodian: listing.Custodian,
		Seller:    listing.Seller,
		Price:     listing.Price,
		IsListed:  listing.IsListed,
	})

	return nil
}

func (s *service) Claim(caller string, assetId uint64) error {
	s.mu.Lock()
	err := s.ledger.Claim(caller, assetId)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	zap.L().With(zap.Uint64("assetId", assetId), zap.String("owner", caller)).Info("Market: Claim")

	event.EmitEvent(event.AssetClaimedEvent, event.AssetClaimed{AssetId: assetId, Owner: caller})

	return nil
}

func (s *service) ExecuteSale(buyer string, assetId uint64, payment uint64) error {
	s.mu.Lock()
	receipt, err := s.engine.ExecuteSale(buyer, assetId, payment)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, ledger.ErrTransferFailed) {
			zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId), zap.String("buyer", buyer)).
				Error("Market: Settlement rolled back")
			event.EmitEvent(event.SettlementFailedEvent, event.SettlementFailed{
				AssetId: assetId,
				Buyer:   buyer,
				Reason:  err.Error(),
			})
		}
		return err
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("seller", receipt.Seller),
		zap.String("buyer", buyer),
		zap.Uint64("price", receipt.Price),
		zap.Uint64("fee", receipt.Fee),
	).Info("Market: Sale")

	event.EmitEvent(event.SoldEvent, event.Sold{
		AssetId: receipt.AssetId,
		Seller:  receipt.Seller,
		Buyer:   receipt.Buyer,
		Price:   receipt.Price,
	})
	event.EmitEvent(event.SettlementEvent, event.Settlement{
		AssetId:  receipt.AssetId,
		Seller:   receipt.Seller,
		Buyer:    receipt.Buyer,
		Price:    receipt.Price,
		Fee:      receipt.Fee,
		Proceeds: receipt.Proceeds,
	})

	return nil
}

func (s *service) SetListingFee(caller string, newFee uint64) error {
	s.mu.Lock()
	var err error
	if caller != s.operator {
		err = ledger.ErrUnauthorized
	} else {
		err = s.ledger.SetListingFee(newFee)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	zap.L().With(zap.Uint64("fee", newFee)).Info("Market: Listing fee changed")

	event.EmitEvent(event.FeeChangedEvent, event.FeeChanged{Fee: newFee})

	return nil
}

func (s *service) GetListingFee() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.ListingFee()
}

func (s *service) GetListing(assetId uint64) (entity.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.GetListing(assetId)
}

func (s *service) GetLatestListing() (entity.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.LatestListing()
}

func (s *service) AllActiveListings() []entity.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.ActiveListings()
}

func (s *service) ListForAccount(account string) []entity.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.AssetsFor(account)
}

func (s *service) GetCurrentAssetCounter() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.AssetCounter()
}
