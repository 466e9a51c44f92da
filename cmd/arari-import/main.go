// arari-import JSON の取込バッチをサーバーを介さず SQLite に取り込む
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"arari/internal/config"
	"arari/internal/importer"
	"arari/internal/model"
	"arari/internal/store"
)

var (
	dataDir = flag.String("dataDir", "", "データディレクトリ（設定ファイルを上書き）")
	file    = flag.String("file", "", "取込バッチ（JSON）")
)

func main() {
	flag.Parse()
	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: arari-import -file batch.json [-dataDir dir]")
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Error("import failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var batch model.ImportBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("decode %s: %w", *file, err)
	}
	if batch.Source == "" {
		batch.Source = filepath.Base(*file)
	}

	st, err := store.New(config.DatabasePath(dir))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	report, err := importer.New(st, logger).Import(context.Background(), batch)
	if report != nil {
		for _, row := range report.RowErrors {
			for _, e := range row.Errors {
				fmt.Printf("  [%s #%d %s] %s: %s\n", row.Kind, row.Index, row.Key, e.Field, e.Message)
			}
		}
	}
	if errors.Is(err, importer.ErrRejected) {
		return fmt.Errorf("%d rows rejected", len(report.RowErrors))
	}
	if err != nil {
		return err
	}

	fmt.Printf("import done: %d employees, %d records, periods=%v (%s)\n",
		report.Employees, report.Records, report.Periods, config.DatabasePath(dir))
	return nil
}
