package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/client"
	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/connection"
	handler "github.com/MKhiriev/merlin-client/internal/handler/http"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/relay"
	"github.com/MKhiriev/merlin-client/internal/server"
	"github.com/MKhiriev/merlin-client/internal/service"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/internal/tui"
	"github.com/MKhiriev/merlin-client/internal/wallet"
	"github.com/MKhiriev/merlin-client/internal/workers"
	"github.com/MKhiriev/merlin-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.NewClientLogger("merlin-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	storages, err := store.NewClientStorages(cfg.Storage, log.WithComponent("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	walletLog := log.WithComponent("wallet")
	providers := wallet.NewProviders(cfg.Adapter, walletLog)
	relayProvider, err := providers.Relay()
	if err != nil {
		log.Fatal().Err(err).Msg("create relay provider")
	}

	creationCode, err := relay.FetchCreationCode(ctx, relayProvider, cfg.Wallet.CPKFactory)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch proxy creation code")
	}
	deriver := relay.NewProxyDeriver(cfg.Wallet.CPKFactory, relay.InitCode(creationCode, cfg.Wallet.CPKMasterCopy))

	markets, err := adapter.NewMarketsAdapter(cfg.Adapter, log.WithComponent("subgraph"))
	if err != nil {
		log.Fatal().Err(err).Msg("create markets adapter")
	}

	services, err := service.NewClientServices(cfg, markets, deriver, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	tracker := workers.NewBlockTracker(cfg.Workers.BlockTrackerInterval, log.WithComponent("tracker"))
	safe := wallet.NewSafe(providers, walletLog)
	registry := wallet.NewRegistry(
		wallet.NewHosted(providers, storages.LocalStorage, tracker, walletLog),
		wallet.NewInjected(providers, walletLog),
		safe,
		wallet.NewWalletConnect(providers, storages.LocalStorage, cfg.Workers.HandshakeTimeout, cfg.Workers.HandshakePollInterval, walletLog),
	)
	manager := wallet.NewManager(registry, cfg.Workers.KeepBlockTracker, walletLog)

	machine := connection.NewMachine(connection.Deps{
		Wallet:   manager,
		Valid:    registry.Valid,
		Safe:     safe,
		Storage:  storages.LocalStorage,
		Resolver: relay.NewResolver(deriver, relayProvider),
		Balances: services.BalanceService,
		Proxy:    services.ProxyService,
		Debug:    cfg.Wallet.Debug,
	}, log.WithComponent("connection"))

	ui, err := tui.New(machine, services.MarketService, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log.WithComponent("tui"))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	components := client.Components{
		Connection: machine,
		UI:         ui,
		Wallet:     manager,
		Workers:    workers.NewWorkers(tracker),
		Storage:    storages,
	}
	if cfg.Server.HTTPAddress != "" {
		bridgeLog := log.WithComponent("bridge")
		h := handler.NewHandler(machine, storages.LocalStorage, services, bridgeLog)
		bridge, err := server.NewServer(h.Init(), cfg.Server, bridgeLog)
		if err != nil {
			log.Fatal().Err(err).Msg("create bridge server")
		}
		components.Bridge = bridge
	}

	app, err := client.NewApp(components, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
