package entity

type Listing struct {
	AssetId   uint64 `json:"assetId"`
	Custodian string `json:"custodian"`
	Seller    string `json:"seller"`
	Price     uint64 `json:"price"`
	IsListed  bool   `json:"isListed"`
}
