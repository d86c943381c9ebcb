package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajay-gandhi/alfred4.0/internal/api"
	"github.com/ajay-gandhi/alfred4.0/internal/bot"
	"github.com/ajay-gandhi/alfred4.0/internal/config"
	"github.com/ajay-gandhi/alfred4.0/internal/db"
	"github.com/ajay-gandhi/alfred4.0/internal/order"
	"github.com/ajay-gandhi/alfred4.0/internal/seamless"
)

// runTimeout bounds one full automation run across all batches.
const runTimeout = 45 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	newSurface := func() (*seamless.Surface, error) {
		return seamless.New(seamless.Config{
			BaseURL:     cfg.SeamlessURL,
			Username:    cfg.SeamlessUser,
			Password:    cfg.SeamlessPass,
			ReceiptsDir: cfg.ReceiptsDir,
			Headless:    true,
		})
	}

	// One automation run: fresh browser, grouped pending orders, pipeline
	// under retry, then clear the lines that were actually submitted.
	runOrders := func(ctx context.Context) (order.RunResult, error) {
		surface, err := newSurface()
		if err != nil {
			return order.RunResult{}, err
		}
		defer surface.Close()

		batches, rawNames, err := database.GroupedPendingOrders(ctx)
		if err != nil {
			return order.RunResult{}, err
		}

		pipeline := order.NewPipeline(surface, database, order.NewCalleeSelector(nil), order.PipelineConfig{
			DeliveryTime: cfg.DeliveryTime,
			Ceiling:      cfg.Ceiling,
			Instructions: cfg.Instructions,
			DryRun:       cfg.DryRun,
		})
		runner := order.NewRunner(order.NewRetrier(pipeline, cfg.MaxAttempts), database, cfg.BatchPause)

		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		result := runner.Run(runCtx, batches)

		var submitted []string
		for _, br := range result.Batches {
			if br.OK {
				submitted = append(submitted, rawNames[br.Restaurant]...)
			}
		}
		if err := database.ClearRestaurantOrders(context.Background(), submitted); err != nil {
			log.Printf("run: failed to clear submitted orders: %v", err)
		}
		return result, nil
	}

	scrapeMenus := func(ctx context.Context) (int, error) {
		surface, err := newSurface()
		if err != nil {
			return 0, err
		}
		defer surface.Close()
		return surface.ScrapeMenus(ctx, cfg.DeliveryTime, database)
	}

	// Initialize Discord bot
	discordBot, err := bot.New(cfg, database, runOrders, scrapeMenus)
	if err != nil {
		log.Fatalf("Failed to create discord bot: %v", err)
	}

	// Initialize API server
	apiServer := api.New(cfg, database, discordBot.RunNow)

	// Start Discord bot
	if err := discordBot.Start(); err != nil {
		log.Fatalf("Failed to start discord bot: %v", err)
	}
	defer discordBot.Stop()

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}
