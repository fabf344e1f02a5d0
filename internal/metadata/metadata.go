package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintbay/marketplace/internal/config"
	"github.com/patrickmn/go-cache"
)

var ErrInvalidUri = errors.New("invalid metadata uri")

// Service fetches the json document behind an asset's metadata uri. The core
// ledger treats the uri as opaque; fetching is a read-side concern only.
type Service interface {
	FetchMetadata(uri string) (map[string]interface{}, error)
}

type service struct {
	client *retryablehttp.Client
	cache  *cache.Cache
}

func NewMetadataService(client *retryablehttp.Client, c *cache.Cache) Service {
	return service{client, c}
}

func (s service) FetchMetadata(uri string) (map[string]interface{}, error) {
	if cached, found := s.cache.Get(uri); found {
		return cached.(map[string]interface{}), nil
	}

	resolved := ResolveUri(uri, config.Get().IpfsHosts[0])
	if !strings.HasPrefix(resolved, "http") {
		return nil, ErrInvalidUri
	}

	resp, err := s.client.Get(resolved)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errors.New(resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	s.cache.Set(uri, md, cache.DefaultExpiration)

	return md, nil
}
