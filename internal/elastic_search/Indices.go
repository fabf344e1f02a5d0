package elastic_search

import (
	"fmt"

	"github.com/mintbay/marketplace/internal/config"
)

type Indices string

var (
	AssetIndex        Indices = "asset"
	MarketActionIndex Indices = "marketaction"
	DevErrorIndex     Indices = "deverror"
)

// Sets the network and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
