package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Asset is the search document kept for every minted asset. The listing ledger
// is the source of truth; this index exists for catalog queries and metadata.
type Asset struct {
	Id          uint64 `json:"id"`
	MetadataUri string `json:"metadataUri"`
	Owner       string `json:"owner"`
	Seller      string `json:"seller"`
	Price       uint64 `json:"price"`
	IsListed    bool   `json:"isListed"`
	Burned      bool   `json:"burned"`

	HasMetadata   bool                   `json:"hasMetadata"`
	MetadataError string                 `json:"metadataError"`
	Metadata      map[string]interface{} `json:"metadata"`
}

func (a Asset) Slug() string {
	return CreateAssetSlug(a.Id)
}

func CreateAssetSlug(assetId uint64) string {
	return slug.Make(fmt.Sprintf("asset-%d", assetId))
}
