package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arari/internal/store"
)

// StatusResponse システム状態
type StatusResponse struct {
	Initialized     bool   `json:"initialized"` // 明細が1件以上ある
	Employees       int    `json:"employees"`
	Records         int    `json:"records"`
	Periods         int    `json:"periods"`
	LatestPeriod    string `json:"latestPeriod"`
	LastImportBatch string `json:"lastImportBatch"`
	LastImportTime  string `json:"lastImportTime"`
	Driver          string `json:"driver"`
}

// GetStatus システム状態
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}

	periods, err := h.repo.ListAvailablePeriods(c.Request.Context())
	if err != nil {
		h.internalError(c, "期間一覧の取得に失敗しました", err)
		return
	}

	resp := StatusResponse{
		Initialized:  len(ds.records) > 0,
		Employees:    len(ds.employees),
		Records:      len(ds.records),
		Periods:      len(periods),
		LatestPeriod: h.agg.LatestPeriod(ds.records),
		Driver:       h.cfg.Data.Driver,
	}
	resp.LastImportBatch = h.setting(c, store.SettingLastImportBatch)
	resp.LastImportTime = h.setting(c, store.SettingLastImportAt)

	c.JSON(http.StatusOK, resp)
}

// setting 未設定なら空文字
func (h *Handler) setting(c *gin.Context, key string) string {
	v, err := h.repo.GetSetting(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Warn("failed to read setting", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return v
}
