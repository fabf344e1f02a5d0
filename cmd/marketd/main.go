package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mintbay/marketplace/internal/config"
	"github.com/mintbay/marketplace/internal/config/dic"
	"github.com/mintbay/marketplace/internal/event"
	"go.uber.org/zap"
)

var container *dic.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()

	event.AddEventListener(event.ListingCreatedEvent, container.GetActionIndexer().OnListingCreated)
	event.AddEventListener(event.ListingCreatedEvent, container.GetPublisher().OnListingCreated)
	event.AddEventListener(event.SoldEvent, container.GetActionIndexer().OnSold)
	event.AddEventListener(event.SoldEvent, container.GetPublisher().OnSold)
	event.AddEventListener(event.SettlementEvent, container.GetActionIndexer().OnSettlement)
	event.AddEventListener(event.AssetClaimedEvent, container.GetActionIndexer().OnClaimed)
	event.AddEventListener(event.SettlementFailedEvent, container.GetActionIndexer().OnSettlementFailed)

	container.GetMetadataIndexer()

	go health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Started")

	server := container.GetApiServer()
	if err := http.ListenAndServe(":"+config.Get().ApiPort, server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace api")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health check")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
