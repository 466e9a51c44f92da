package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard ダッシュボード
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, h.agg.DashboardStats(ds.employees, ds.records, ds.ignored))
}

// GetTrend 期間推移（古い順）
// GET /api/trend
func (h *Handler) GetTrend(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.agg.ProfitTrend(ds.employees, ds.records)})
}
