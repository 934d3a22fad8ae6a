package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/internal/adminapi"
	"github.com/bistrostack/gastropanel/internal/app"
	"github.com/bistrostack/gastropanel/internal/webserver"
)

var configFile = flag.String("c", "gastropanel.yml", "config file path")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := application.Init(initCtx, cfg); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	cancel()
	defer application.Release()

	seedCtx, cancelSeed := context.WithTimeout(ctx, 10*time.Second)
	if seeded, err := adminapi.SeedAdmins(seedCtx, application.Store()); err != nil {
		zap.L().Error("admin account check failed", zap.Error(err))
	} else if len(seeded) > 0 {
		zap.L().Info("seeded admin accounts", zap.Strings("logins", seeded))
	}
	cancelSeed()

	web := webserver.New(cfg)
	api := adminapi.NewServer(cfg, application.Store(), application.Audit(), application.Notifier())
	api.Register(web)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
