package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"evergrove/internal/config"
	"evergrove/internal/server"
	"evergrove/internal/store"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	st, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}

	srv := server.New(cfg, st, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("using in-memory snapshot store")
		return store.NewMemory(), nil
	}
	r := store.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SnapshotTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		return nil, err
	}
	logger.Info("using redis snapshot store", zap.String("addr", cfg.Redis.Addr))
	return r, nil
}
