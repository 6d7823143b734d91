package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/handlers"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/sessions"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/auction"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/repositories"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/gamification"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/logger"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	customHandler := logger.NewHandler("PokeVault", cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting PokeVault Market API",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	listingRepo := repositories.NewListingRepository(db.BunDB())
	bidRepo := repositories.NewBidRepository(db.BunDB())
	userRepo := repositories.NewUserRepository(db.BunDB())
	bidStore := repositories.NewBidStore(db.BunDB())

	xpService := gamification.NewService(db.BunDB())
	engine := bidding.NewEngine(bidStore, xpService, bidding.Config{
		ExtendWindow: cfg.Auction.ExtendWindow(),
		ExtendBy:     cfg.Auction.ExtendBy(),
	})

	searchService := services.NewListingSearchService(listingRepo)
	sessionService := sessions.NewService(cfg.Session.Secret)

	app := api.NewApp(cfg, handlers.NewAPI(
		engine,
		listingRepo,
		bidRepo,
		userRepo,
		searchService,
		sessionService,
	))

	worker := auction.NewWorker(db.BunDB(), cfg.Auction.SweepInterval())

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		slog.Info("Listening", slog.String("addr", addr))
		return app.Listen(addr)
	})

	group.Go(func() error {
		err := worker.Run(groupCtx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down...")
		return app.ShutdownWithTimeout(config.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}
