package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// データストアの種類
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// 環境変数（.env でも可）
const (
	EnvPort                    = "ARARI_PORT"
	EnvDevMode                 = "ARARI_DEV_MODE"
	EnvDataDir                 = "ARARI_DATA_DIR"
	EnvDataDriver              = "ARARI_DATA_DRIVER"
	EnvEmploymentInsuranceRate = "ARARI_EMPLOYMENT_INSURANCE_RATE"
	EnvWorkersCompRate         = "ARARI_WORKERS_COMP_RATE"
	EnvTargetMargin            = "ARARI_TARGET_MARGIN"
)

// AppConfig アプリ設定
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Rates    RatesConfig    `toml:"rates"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig データ設定
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	Driver  string `toml:"driver"` // sqlite or memory
}

// RatesConfig 会社負担の保険料率
type RatesConfig struct {
	EmploymentInsuranceRate float64 `toml:"employment_insurance_rate"`
	WorkersCompRate         float64 `toml:"workers_comp_rate"`
}

// BusinessConfig 集計の閾値
type BusinessConfig struct {
	TargetMargin  float64 `toml:"target_margin"`  // %
	WarningMargin float64 `toml:"warning_margin"` // %
	TopN          int     `toml:"top_n"`
	RecentLimit   int     `toml:"recent_limit"`
}

// LoadConfigInfo 読み込み時のメタ情報
type LoadConfigInfo struct {
	Path          string // 読み込んだ config.toml（無ければ空）
	PortSpecified bool
	EnvOverrides  []string
}

// DefaultConfig 既定値
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			Driver:  DriverSQLite,
		},
		Rates: RatesConfig{
			EmploymentInsuranceRate: 0.0095,
			WorkersCompRate:         0.003,
		},
		Business: BusinessConfig{
			TargetMargin:  15,
			WarningMargin: 10,
			TopN:          5,
			RecentLimit:   10,
		},
	}
}

// Validate 設定値の整合性
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Data.Driver != DriverSQLite && c.Data.Driver != DriverMemory {
		errs = append(errs, fmt.Errorf("data.driver must be %q or %q: %q", DriverSQLite, DriverMemory, c.Data.Driver))
	}
	if c.Rates.EmploymentInsuranceRate < 0 || c.Rates.EmploymentInsuranceRate >= 1 {
		errs = append(errs, fmt.Errorf("rates.employment_insurance_rate out of range: %v", c.Rates.EmploymentInsuranceRate))
	}
	if c.Rates.WorkersCompRate < 0 || c.Rates.WorkersCompRate >= 1 {
		errs = append(errs, fmt.Errorf("rates.workers_comp_rate out of range: %v", c.Rates.WorkersCompRate))
	}
	if c.Business.WarningMargin > c.Business.TargetMargin {
		errs = append(errs, fmt.Errorf("business.warning_margin (%v) exceeds target_margin (%v)", c.Business.WarningMargin, c.Business.TargetMargin))
	}
	if c.Business.TopN <= 0 {
		errs = append(errs, fmt.Errorf("business.top_n must be positive: %d", c.Business.TopN))
	}
	return errors.Join(errs...)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 実行ファイルのディレクトリ
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 実行ファイルと同じディレクトリの config.toml / .env を読む
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadConfigFrom(exeDir)
}

// LoadConfigFrom dir の config.toml と .env を読み、環境変数で上書きする
// 優先順位: 既定値 < config.toml < 環境変数（.env を含む）
func LoadConfigFrom(dir string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	// .env は既存の環境変数を上書きしない
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, info, fmt.Errorf("load .env: %w", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.Path = configPath
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// 既定値のまま
	default:
		return nil, info, err
	}

	overrides, err := applyEnv(config)
	if err != nil {
		return nil, info, err
	}
	info.EnvOverrides = overrides
	if contains(overrides, EnvPort) {
		info.PortSpecified = true
	}

	if err := config.Validate(); err != nil {
		return nil, info, fmt.Errorf("invalid config: %w", err)
	}
	return config, info, nil
}

// LoadConfig config.toml を読む
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

func applyEnv(c *AppConfig) ([]string, error) {
	var applied []string

	setInt := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		applied = append(applied, key)
		return nil
	}
	setFloat := func(key string, dst *float64) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
		applied = append(applied, key)
		return nil
	}
	setBool := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		applied = append(applied, key)
		return nil
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
			applied = append(applied, key)
		}
	}

	if err := setInt(EnvPort, &c.Server.Port); err != nil {
		return nil, err
	}
	if err := setBool(EnvDevMode, &c.Server.DevMode); err != nil {
		return nil, err
	}
	setString(EnvDataDir, &c.Data.DataDir)
	setString(EnvDataDriver, &c.Data.Driver)
	if err := setFloat(EnvEmploymentInsuranceRate, &c.Rates.EmploymentInsuranceRate); err != nil {
		return nil, err
	}
	if err := setFloat(EnvWorkersCompRate, &c.Rates.WorkersCompRate); err != nil {
		return nil, err
	}
	if err := setFloat(EnvTargetMargin, &c.Business.TargetMargin); err != nil {
		return nil, err
	}
	return applied, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

// SaveConfig config.toml に保存
func SaveConfig(dir string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0644)
}

// EnsureDataDir データディレクトリを作成して絶対パスを返す
// 相対パスは実行ファイルのディレクトリ基準
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DatabasePath SQLite ファイルのパス
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "arari.db")
}
