package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/app/validation"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-api/internal/infrastructure/telemetry"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "catalog-api",
		Usage: "product catalog with search, pagination and view state",
		Commands: []*cli.Command{
			serveCommand(),
			categoriesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "listen host (overrides SERVER_HOST)"},
			&cli.StringFlag{Name: "port", Usage: "listen port (overrides SERVER_PORT)"},
			&cli.IntFlag{Name: "seed", Usage: "number of mock products to start with (overrides CATALOG_SEED)"},
			&cli.BoolFlag{Name: "no-telemetry", Usage: "disable OTLP export"},
		},
		Action: serve,
	}
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "print the product categories",
		Action: func(c *cli.Context) error {
			for _, category := range domain.Categories() {
				fmt.Fprintln(c.App.Writer, category)
			}
			return nil
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("host") {
		cfg.Server.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.String("port")
	}
	if c.IsSet("seed") {
		cfg.Catalog.Seed = c.Int("seed")
	}
	if c.Bool("no-telemetry") {
		cfg.OTLP.Enabled = false
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		telem, err = telemetry.NewTelemetry(ctx, cfg)
	} else {
		telem, err = telemetry.NewNoOpTelemetry(ctx, cfg)
	}
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("catalog-api")
	meter := telem.MeterProvider.Meter("catalog-api")
	logger := telem.Logger

	logger.Info("Starting Catalog API")

	seed := memory.GenerateMockProducts(cfg.Catalog.Seed, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), time.Now())
	store := memory.NewProductStore(tracer, logger, memory.WithProducts(seed))

	productService := service.NewProductService(store, validation.NewProductValidator(), tracer, meter, logger)

	server := http.NewServer(
		&cfg.Server,
		handler.NewProductHandler(productService, logger),
		handler.NewViewHandler(productService, logger),
		telem,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}
