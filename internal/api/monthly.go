package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"arari/internal/period"
)

// GetMonthly 月次サマリー。period 未指定なら最新期間
// GET /api/monthly?period=2025年3月
func (h *Handler) GetMonthly(c *gin.Context) {
	label := strings.TrimSpace(c.Query("period"))
	if label != "" && !period.Valid(label) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "期間は「2025年3月」の形式で指定してください"})
		return
	}

	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}
	if len(ds.records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "明細データがありません"})
		return
	}

	c.JSON(http.StatusOK, h.agg.MonthlySummary(ds.employees, ds.records, label))
}

// ListMonthly 全期間の月次サマリー（新しい順、前月比付き）
// GET /api/monthly/all
func (h *Handler) ListMonthly(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.agg.MonthlySummaries(ds.employees, ds.records)})
}
