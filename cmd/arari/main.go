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

	"arari/internal/config"
	"arari/internal/server"
	"arari/internal/service/aggregator"
	"arari/internal/service/calculator"
	memstore "arari/internal/service/store"
	"arari/internal/store"
	"arari/internal/util"
)

var (
	port    = flag.Int("port", 0, "待ち受けポート（config.toml に port が無い場合のみ有効）")
	devMode = flag.Bool("dev", false, "開発モード")
	dataDir = flag.String("dataDir", "", "データディレクトリ（設定ファイルを上書き）")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  arari - 派遣社員 粗利分析")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗したため既定値を使います: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger, err := newLogger(cfg.Server.DevMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if info.Path != "" {
		logger.Info("config loaded", zap.String("path", info.Path), zap.Strings("env_overrides", info.EnvOverrides))
	}

	repo, err := openRepository(cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	calc := calculator.NewCalculator(calculator.Rates{
		EmploymentInsurance: cfg.Rates.EmploymentInsuranceRate,
		WorkersComp:         cfg.Rates.WorkersCompRate,
	})
	agg := aggregator.New(calc, aggregator.Options{
		TargetMargin:  cfg.Business.TargetMargin,
		WarningMargin: cfg.Business.WarningMargin,
		TopN:          cfg.Business.TopN,
		RecentLimit:   cfg.Business.RecentLimit,
	}, logger)

	srv := server.NewServer(cfg, repo, agg, logger)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("ブラウザを開きます: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("ブラウザを開けませんでした。手動でアクセスしてください: %s\n", url)
		}
	} else {
		fmt.Printf("開発モード: %s\n", url)
	}

	fmt.Println("\nCtrl+C で停止します...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server stopped", zap.Error(err))
		}
		return
	case <-quit:
	}

	fmt.Println("\n停止しています...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openRepository 設定のドライバに応じたストアを開く
func openRepository(cfg *config.AppConfig, logger *zap.Logger) (store.Repository, error) {
	if cfg.Data.Driver == config.DriverMemory {
		logger.Warn("memory store selected; data is lost on exit")
		return memstore.NewMemoryStore(), nil
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	path := config.DatabasePath(dir)
	logger.Info("opening sqlite store", zap.String("path", path))
	db, err := store.New(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}
