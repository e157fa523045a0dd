// Package main provides the roll server binary, which serves treasure and
// encounter generation over gRPC.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/hoard/internal/config"
	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/encounter"
	"github.com/cory-johannsen/hoard/internal/game/monster"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
	"github.com/cory-johannsen/hoard/internal/observability"
	"github.com/cory-johannsen/hoard/internal/rollserver"
	"github.com/cory-johannsen/hoard/internal/server"
	"github.com/cory-johannsen/hoard/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "rollserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src, err := dice.NewSource(cfg.Dice.Source, cfg.Dice.Seed)
	if err != nil {
		logger.Fatal("creating dice source", zap.Error(err))
	}
	roller := dice.NewLoggedRoller(src, logger)

	logger.Info("starting roll server",
		append([]zap.Field{zap.String("grpc_addr", cfg.RollServer.Addr())}, observability.DiceFields(cfg.Dice)...)...,
	)

	monsters, err := monster.LoadRegistry(cfg.Content.MonstersFile)
	if err != nil {
		logger.Fatal("loading monsters", zap.Error(err))
	}
	logger.Info("loaded monsters", zap.Int("count", monsters.Len()))

	lifecycle := server.NewLifecycle(logger, cfg.RollServer.ShutdownTimeout)

	var ledger rollserver.Ledger
	if cfg.RollServer.Record {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		ledger = pool.Hoards()
		logger.Info("recording results to hoard ledger")

		healthCtx, stopHealth := context.WithCancel(ctx)
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				return pool.WatchHealth(healthCtx, 30*time.Second, 5*time.Second, logger)
			},
			StopFn: func() {
				stopHealth()
				pool.Close()
			},
		})
	}

	svc := rollserver.NewServer(
		treasure.NewGenerator(roller, logger),
		encounter.NewResolver(roller, monsters, logger),
		ledger,
		logger,
	)

	grpcServer := grpc.NewServer()
	rollserver.RegisterRollServiceServer(grpcServer, svc)

	lifecycle.Add("grpc", &server.FuncService{
		StartFn: func() error {
			lis, err := net.Listen("tcp", cfg.RollServer.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.RollServer.Addr(), err)
			}
			logger.Info("gRPC server listening",
				zap.String("addr", lis.Addr().String()),
			)
			return grpcServer.Serve(lis)
		},
		StopFn: func() {
			grpcServer.GracefulStop()
		},
	})

	logger.Info("roll server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
