package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

type MarketAction struct {
	AssetId uint64     `json:"assetId"`
	Action  ActionType `json:"action"`
	From    string     `json:"from"`
	To      string     `json:"to"`
	Price   uint64     `json:"price"`
	Fee     uint64     `json:"fee"`
	Time    time.Time  `json:"time"`
	Nonce   string     `json:"nonce"`
}

type ActionType string

const (
	MintAction    ActionType = "mint"
	ListingAction ActionType = "listing"
	SaleAction    ActionType = "sale"
	ClaimAction   ActionType = "claim"
	FeeAction     ActionType = "fee"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.AssetId, string(a.Action), a.Nonce)
}

func CreateMarketActionSlug(assetId uint64, action, nonce string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%s", assetId, action, nonce))
	return fmt.Sprintf("%x", md5.Sum(data))
}
