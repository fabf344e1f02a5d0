package registry

import (
	"errors"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAssetExists   = errors.New("asset already minted")
	ErrNotOwner      = errors.New("account is not the owner of record")
)

// AssetRegistry is the ownership primitive the marketplace calls into. It
// issues nothing itself; identifiers are assigned by the listing ledger.
type AssetRegistry interface {
	Mint(owner string, assetId uint64) error
	Burn(assetId uint64) error
	Transfer(from, to string, assetId uint64) error

	OwnerOf(assetId uint64) (string, error)
	Exists(assetId uint64) bool

	Approve(assetId uint64, delegate string) error
	GetApproved(assetId uint64) (string, error)

	SetMetadata(assetId uint64, uri string) error
	GetMetadata(assetId uint64) (string, error)
}

type asset struct {
	owner       string
	approved    string
	metadataUri string
}

type memoryRegistry struct {
	assets map[uint64]*asset
}

func NewMemoryRegistry() AssetRegistry {
	return memoryRegistry{assets: make(map[uint64]*asset)}
}

func (r memoryRegistry) Mint(owner string, assetId uint64) error {
	if _, ok := r.assets[assetId]; ok {
		return ErrAssetExists
	}

	r.assets[assetId] = &asset{owner: owner}

	return nil
}

func (r memoryRegistry) Burn(assetId uint64) error {
	if _, ok := r.assets[assetId]; !ok {
		return ErrAssetNotFound
	}

	delete(r.assets, assetId)

	return nil
}

// Transfer moves custody and clears any outstanding approval.
func (r memoryRegistry) Transfer(from, to string, assetId uint64) error {
	a, ok := r.assets[assetId]
	if !ok {
		return ErrAssetNotFound
	}

	if a.owner != from {
		return ErrNotOwner
	}

	a.owner = to
	a.approved = ""

	return nil
}

func (r memoryRegistry) OwnerOf(assetId uint64) (string, error) {
	a, ok := r.assets[assetId]
	if !ok {
		return "", ErrAssetNotFound
	}

	return a.owner, nil
}

func (r memoryRegistry) Exists(assetId uint64) bool {
	_, ok := r.assets[assetId]

	return ok
}

func (r memoryRegistry) Approve(assetId uint64, delegate string) error {
	a, ok := r.assets[assetId]
	if !ok {
		return ErrAssetNotFound
	}

	a.approved = delegate

	return nil
}

func (r memoryRegistry) GetApproved(assetId uint64) (string, error) {
	a, ok := r.assets[assetId]
	if !ok {
		return "", ErrAssetNotFound
	}

	return a.approved, nil
}

func (r memoryRegistry) SetMetadata(assetId uint64, uri string) error {
	a, ok := r.assets[assetId]
	if !ok {
		return ErrAssetNotFound
	}

	a.metadataUri = uri

	return nil
}

func (r memoryRegistry) GetMetadata(assetId uint64) (string, error) {
	a, ok := r.assets[assetId]
	if !ok {
		return "", ErrAssetNotFound
	}

	return a.metadataUri, nil
}
