package ledger

import (
	"errors"

	"github.com/mintbay/marketplace/internal/entity"
	"github.com/mintbay/marketplace/internal/registry"
	"go.uber.org/zap"
)

// Ledger is the single-writer state aggregate behind the marketplace: the
// asset id counter, the listing fee, the listing records and the per-account
// acquisition log. It is not safe for concurrent use; callers serialise
// access (see market.Service).
type Ledger struct {
	registry registry.AssetRegistry
	escrow   string

	assetCounter uint64
	onSaleCount  int
	listingFee   uint64

	listings map[uint64]entity.Listing
	holdings map[string][]uint64
}

func New(assetRegistry registry.AssetRegistry, escrow string, listingFee uint64) (*Ledger, error) {
	if listingFee == 0 {
		return nil, ErrInvalidFee
	}

	return &Ledger{
		registry:   assetRegistry,
		escrow:     escrow,
		listingFee: listingFee,
		listings:   make(map[uint64]entity.Listing),
		holdings:   make(map[string][]uint64),
	}, nil
}

// NextAssetId assigns the next identifier. Identifiers start at zero and are
// never reused, even after a claim destroys the asset.
func (l *Ledger) NextAssetId() uint64 {
	id := l.assetCounter
	l.assetCounter++

	return id
}

func (l *Ledger) AssetCounter() uint64 {
	return l.assetCounter
}

func (l *Ledger) OnSaleCount() int {
	return l.onSaleCount
}

func (l *Ledger) Escrow() string {
	return l.escrow
}

func (l *Ledger) ListingFee() uint64 {
	return l.listingFee
}

func (l *Ledger) SetListingFee(newFee uint64) error {
	if newFee == 0 {
		return ErrInvalidFee
	}

	l.listingFee = newFee

	return nil
}

// ValidatePrice enforces the listing price floor against the current fee.
// Listings are only validated at listing time; a later fee change never
// re-validates them.
func (l *Ledger) ValidatePrice(price uint64) error {
	if price < 2*l.listingFee {
		return ErrInvalidPrice
	}

	return nil
}

// CreateListing records the listing and moves custody of the asset from its
// owner of record into escrow. The record is overwritten in place when the
// asset has been listed before.
func (l *Ledger) CreateListing(assetId uint64, seller string, price uint64) error {
	if !l.registry.Exists(assetId) {
		return ErrNotFound
	}

	if err := l.ValidatePrice(price); err != nil {
		return err
	}

	owner, err := l.registry.OwnerOf(assetId)
	if err != nil {
		return ErrNotFound
	}

	if err := l.registry.Transfer(owner, l.escrow, assetId); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Error("Ledger: Failed to move asset into escrow")
		return err
	}

	l.listings[assetId] = entity.Listing{
		AssetId:   assetId,
		Custodian: l.escrow,
		Seller:    seller,
		Price:     price,
		IsListed:  true,
	}
	l.onSaleCount++

	return nil
}

// Relist puts a previously sold asset back on sale, with the caller as the
// new seller.
func (l *Ledger) Relist(caller string, assetId uint64, price uint64) error {
	listing, ok := l.listings[assetId]
	if !ok {
		return ErrNotFound
	}

	if listing.IsListed {
		return ErrAlreadyListed
	}

	owner, err := l.registry.OwnerOf(assetId)
	if err != nil {
		return ErrNotFound
	}

	approved, _ := l.registry.GetApproved(assetId)
	if caller != owner && (approved == "" || caller != approved) {
		return ErrUnauthorized
	}

	return l.CreateListing(assetId, caller, price)
}

func (l *Ledger) GetListing(assetId uint64) (entity.Listing, error) {
	listing, ok := l.listings[assetId]
	if !ok {
		return entity.Listing{}, ErrNotFound
	}

	return listing, nil
}

// LatestListing returns the record for the most recently minted asset. It is
// a convenience lookup, not a guarantee of "newest listed".
func (l *Ledger) LatestListing() (entity.Listing, error) {
	if l.assetCounter == 0 {
		return entity.Listing{}, ErrNotFound
	}

	return l.GetListing(l.assetCounter - 1)
}

// ActiveListings scans every identifier ever minted and filters on IsListed,
// in ascending order. O(total minted), pre-sized with the sale counter.
func (l *Ledger) ActiveListings() []entity.Listing {
	listings := make([]entity.Listing, 0, l.onSaleCount)
	for assetId := uint64(0); assetId < l.assetCounter; assetId++ {
		if listing, ok := l.listings[assetId]; ok && listing.IsListed {
			listings = append(listings, listing)
		}
	}

	return listings
}

// Claim permanently destroys an asset held by the caller and removes its
// listing record. While listed the owner of record is the escrow account, so
// a listed asset can never be claimed.
func (l *Ledger) Claim(caller string, assetId uint64) error {
	if _, ok := l.listings[assetId]; !ok {
		return ErrNotFound
	}

	owner, err := l.registry.OwnerOf(assetId)
	if err != nil {
		return ErrNotFound
	}

	if caller != owner {
		return ErrUnauthorized
	}

	if err := l.registry.Burn(assetId); err != nil {
		return err
	}

	delete(l.listings, assetId)

	return nil
}

// RecordAcquisition appends to the account's historical acquisition log. The
// log is append-only: entries are never deduplicated and never removed when
// the asset is sold away or burned.
func (l *Ledger) RecordAcquisition(account string, assetId uint64) {
	l.holdings[account] = append(l.holdings[account], assetId)
}

// AssetsFor re-filters the acquisition log against the live owner-of-record
// at read time. An asset sold away disappears; one reacquired later appears
// once per acquisition event.
func (l *Ledger) AssetsFor(account string) []entity.Listing {
	listings := make([]entity.Listing, 0)
	for _, assetId := range l.holdings[account] {
		owner, err := l.registry.OwnerOf(assetId)
		if err != nil || owner != account {
			continue
		}

		if listing, ok := l.listings[assetId]; ok {
			listings = append(listings, listing)
		}
	}

	return listings
}

// MarkSold flips the listing into its sold state and records the buyer's
// acquisition. It returns the previous record so a failed settlement can be
// undone. Custody and funds move in the settlement engine.
func (l *Ledger) MarkSold(assetId uint64, buyer string) (entity.Listing, error) {
	listing, ok := l.listings[assetId]
	if !ok {
		return entity.Listing{}, ErrNotFound
	}

	previous := listing

	listing.Price = 0
	listing.IsListed = false
	listing.Custodian = buyer
	listing.Seller = entity.ZeroAddress
	l.listings[assetId] = listing

	l.onSaleCount--
	l.RecordAcquisition(buyer, assetId)

	return previous, nil
}

// UndoSale restores the pre-sale record, the sale counter and the buyer's
// acquisition log after a failed settlement.
func (l *Ledger) UndoSale(previous entity.Listing, buyer string) {
	l.listings[previous.AssetId] = previous
	l.onSaleCount++

	log := l.holdings[buyer]
	if len(log) > 0 && log[len(log)-1] == previous.AssetId {
		l.holdings[buyer] = log[:len(log)-1]
	}
}

// CheckEscrowInvariant reports whether a listing's IsListed flag agrees with
// the registry recording the escrow account as owner of record.
func (l *Ledger) CheckEscrowInvariant(assetId uint64) error {
	listing, ok := l.listings[assetId]
	if !ok {
		return ErrNotFound
	}

	owner, err := l.registry.OwnerOf(assetId)
	if err != nil {
		return err
	}

	if listing.IsListed != (owner == l.escrow) {
		return errors.New("listing state disagrees with escrow custody")
	}

	return nil
}
