package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arari/internal/config"
	"arari/internal/exporter"
	"arari/internal/importer"
	"arari/internal/service/aggregator"
	"arari/internal/store"
)

// Handler 粗利 API。リクエストごとにストアから読み直して集計する
type Handler struct {
	repo      store.Repository
	agg       *aggregator.Aggregator
	importer  *importer.Importer
	exporter  *exporter.Exporter
	cfg       *config.AppConfig
	downloads *exportDownloadStore
	logger    *zap.Logger
}

// NewHandler ハンドラーを作成
func NewHandler(repo store.Repository, agg *aggregator.Aggregator, cfg *config.AppConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:      repo,
		agg:       agg,
		importer:  importer.New(repo, logger),
		exporter:  exporter.NewExporter(),
		cfg:       cfg,
		downloads: newExportDownloadStore(),
		logger:    logger.Named("api"),
	}
}

// RegisterRoutes ルート登録
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 状態・期間
	router.GET("/status", h.GetStatus)
	router.GET("/periods", h.ListPeriods)

	// 集計
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/trend", h.GetTrend)
	router.GET("/monthly", h.GetMonthly)
	router.GET("/monthly/all", h.ListMonthly)

	// 派遣先
	router.GET("/companies", h.ListCompanies)
	router.GET("/companies/:name", h.GetCompany)
	router.PATCH("/companies/:name", h.UpdateCompany)

	// 社員
	router.GET("/employees", h.ListEmployees)
	router.GET("/employees/:id", h.GetEmployee)

	// 取込
	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	// 出力
	router.GET("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)

	// 設定
	router.GET("/config", h.GetConfig)
}
