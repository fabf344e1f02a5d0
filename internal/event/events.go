package event

type Type string

const (
	ListingCreatedEvent   Type = "ListingCreatedEvent"
	SoldEvent             Type = "SoldEvent"
	AssetClaimedEvent     Type = "AssetClaimedEvent"
	FeeChangedEvent       Type = "FeeChangedEvent"
	SettlementEvent       Type = "SettlementEvent"
	SettlementFailedEvent Type = "SettlementFailedEvent"
)

// ListingCreated and Sold are the observable marketplace events. The remaining
// payloads carry richer settlement detail for the audit index only.
type ListingCreated struct {
	AssetId   uint64 `json:"assetId"`
	Custodian string `json:"custodian"`
	Seller    string `json:"seller"`
	Price     uint64 `json:"price"`
	IsListed  bool   `json:"isListed"`
}

type Sold struct {
	AssetId uint64 `json:"assetId"`
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	Price   uint64 `json:"price"`
}

type AssetClaimed struct {
	AssetId uint64 `json:"assetId"`
	Owner   string `json:"owner"`
}

type FeeChanged struct {
	Fee uint64 `json:"fee"`
}

type Settlement struct {
	AssetId  uint64 `json:"assetId"`
	Seller   string `json:"seller"`
	Buyer    string `json:"buyer"`
	Price    uint64 `json:"price"`
	Fee      uint64 `json:"fee"`
	Proceeds uint64 `json:"proceeds"`
}

type SettlementFailed struct {
	AssetId uint64 `json:"assetId"`
	Buyer   string `json:"buyer"`
	Reason  string `json:"reason"`
}
