package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mintbay/marketplace/internal/ledger"
	"github.com/mintbay/marketplace/internal/market"
	"github.com/mintbay/marketplace/internal/repository"
	"go.uber.org/zap"
)

type Server struct {
	market     market.Service
	actionRepo repository.ActionRepository
}

func NewServer(marketService market.Service, actionRepo repository.ActionRepository) Server {
	return Server{marketService, actionRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/fee", s.handleGetFee).Methods("GET")
	r.HandleFunc("/fee", s.handleSetFee).Methods("PUT")
	r.HandleFunc("/counter", s.handleGetCounter).Methods("GET")
	r.HandleFunc("/listings", s.handleActiveListings).Methods("GET")
	r.HandleFunc("/listings/latest", s.handleLatestListing).Methods("GET")
	r.HandleFunc("/listings/{assetId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/accounts/{account}/assets", s.handleAccountAssets).Methods("GET")
	r.HandleFunc("/assets", s.handleMintAndList).Methods("POST")
	r.HandleFunc("/assets/{assetId}/relist", s.handleRelist).Methods("POST")
	r.HandleFunc("/assets/{assetId}/buy", s.handleBuy).Methods("POST")
	r.HandleFunc("/assets/{assetId}/claim", s.handleClaim).Methods("POST")
	r.HandleFunc("/assets/{assetId}/actions", s.handleAssetActions).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "Mintbay Marketplace")
}

func (s Server) handleGetFee(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]uint64{"fee": s.market.GetListingFee()})
}

func (s Server) handleSetFee(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Caller string `json:"caller"`
		Fee    uint64 `json:"fee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.SetListingFee(body.Caller, body.Fee); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, map[string]uint64{"fee": body.Fee})
}

func (s Server) handleGetCounter(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]uint64{"counter": s.market.GetCurrentAssetCounter()})
}

func (s Server) handleActiveListings(w http.ResponseWriter, r *http.Request) {
	writeJson(w, s.market.AllActiveListings())
}

func (s Server) handleLatestListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.market.GetLatestListing()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, listing)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	listing, err := s.market.GetListing(assetId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, listing)
}

func (s Server) handleAccountAssets(w http.ResponseWriter, r *http.Request) {
	account, _ := mux.Vars(r)["account"]

	writeJson(w, s.market.ListForAccount(account))
}

func (s Server) handleMintAndList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Caller      string `json:"caller"`
		MetadataUri string `json:"metadataUri"`
		Price       uint64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assetId, err := s.market.MintAndList(body.Caller, body.MetadataUri, body.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJson(w, map[string]uint64{"assetId": assetId})
}

func (s Server) handleRelist(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var body struct {
		Caller string `json:"caller"`
		Price  uint64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.Relist(body.Caller, assetId, body.Price); err != nil {
		writeError(w, err)
		return
	}

	listing, _ := s.market.GetListing(assetId)
	writeJson(w, listing)
}

func (s Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var body struct {
		Buyer   string `json:"buyer"`
		Payment uint64 `json:"payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.ExecuteSale(body.Buyer, assetId, body.Payment); err != nil {
		writeError(w, err)
		return
	}

	listing, _ := s.market.GetListing(assetId)
	writeJson(w, listing)
}

func (s Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var body struct {
		Caller string `json:"caller"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.Claim(body.Caller, assetId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleAssetActions(w http.ResponseWriter, r *http.Request) {
	assetId, err := getAssetId(r)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actions, err := s.actionRepo.GetActionsByAsset(assetId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("assetId", assetId)).Warn("Actions not available")
		http.Error(w, "actions not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, actions)
}

func getAssetId(r *http.Request) (uint64, error) {
	assetId, ok := mux.Vars(r)["assetId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(assetId, 10, 64)
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrWrongAmount), errors.Is(err, ledger.ErrTransferFailed):
		status = http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrAlreadyListed), errors.Is(err, ledger.ErrSelfPurchase):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidPrice), errors.Is(err, ledger.ErrInvalidFee),
		errors.Is(err, ledger.ErrNotListed), errors.Is(err, market.ErrInvalidUri):
		status = http.StatusBadRequest
	}

	http.Error(w, err.Error(), status)
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
}
