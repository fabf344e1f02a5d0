package settlement

import (
	"errors"
	"fmt"

	"github.com/mintbay/marketplace/internal/bank"
	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/registry"
	"go.uber.org/zap"
)

var ErrSettlementInProgress = errors.New("settlement already in progress")

// Receipt describes a completed sale: how the payment was split and who holds
// the asset now.
type Receipt struct {
	AssetId  uint64
	Seller   string
	Buyer    string
	Price    uint64
	Fee      uint64
	Proceeds uint64
}

// Engine executes the fund split and state transition of a sale as one
// atomic unit. Listing state is mutated before any funds move, so a
// re-entrant call during payout observes the post-sale state. Either payout
// failing undoes every prior step.
type Engine struct {
	ledger   *ledger.Ledger
	registry registry.AssetRegistry
	bank     bank.Service
	operator string

	inFlight bool
}

func NewEngine(stateLedger *ledger.Ledger, assetRegistry registry.AssetRegistry, bankService bank.Service, operator string) *Engine {
	return &Engine{
		ledger:   stateLedger,
		registry: assetRegistry,
		bank:     bankService,
		operator: operator,
	}
}

func (e *Engine) ExecuteSale(buyer string, assetId uint64, payment uint64) (Receipt, error) {
	if e.inFlight {
		return Receipt{}, ErrSettlementInProgress
	}
	e.inFlight = true
	defer func() { e.inFlight = false }()

	listing, err := e.ledger.GetListing(assetId)
	if err != nil {
		return Receipt{}, err
	}

	if !listing.IsListed {
		return Receipt{}, ledger.ErrNotListed
	}

	if payment != listing.Price {
		return Receipt{}, ledger.ErrWrongAmount
	}

	if buyer == listing.Seller {
		return Receipt{}, ledger.ErrSelfPurchase
	}

	// State first, funds last.
	previous, err := e.ledger.MarkSold(assetId, buyer)
	if err != nil {
		return Receipt{}, err
	}

	if err := e.registry.Transfer(e.ledger.Escrow(), buyer, assetId); err != nil {
		e.ledger.UndoSale(previous, buyer)
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Error("Settlement: Failed to release asset from escrow")
		return Receipt{}, err
	}

	fee := e.ledger.ListingFee()
	if fee > payment {
		// A fee raised above an older listing's price is capped at the payment.
		fee = payment
	}
	proceeds := payment - fee

	if err := e.bank.Transfer(buyer, listing.Seller, proceeds); err != nil {
		e.rollback(previous, buyer, assetId)
		return Receipt{}, fmt.Errorf("%w: seller payout: %s", ledger.ErrTransferFailed, err)
	}

	if err := e.bank.Transfer(buyer, e.operator, fee); err != nil {
		if compErr := e.bank.Transfer(listing.Seller, buyer, proceeds); compErr != nil {
			zap.L().With(zap.Error(compErr), zap.Uint64("assetId", assetId)).Error("Settlement: Failed to return seller payout")
		}
		e.rollback(previous, buyer, assetId)
		return Receipt{}, fmt.Errorf("%w: operator payout: %s", ledger.ErrTransferFailed, err)
	}

	return Receipt{
		AssetId:  assetId,
		Seller:   previous.Seller,
		Buyer:    buyer,
		Price:    payment,
		Fee:      fee,
		Proceeds: proceeds,
	}, nil
}

// rollback undoes steps taken before a failed payout: custody returns to
// escrow and the ledger is restored to its pre-sale record.
func (e *Engine) rollback(previous entity.Listing, buyer string, assetId uint64) {
	if err := e.registry.Transfer(buyer, e.ledger.Escrow(), assetId); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Error("Settlement: Failed to return asset to escrow")
	}

	e.ledger.UndoSale(previous, buyer)
}
