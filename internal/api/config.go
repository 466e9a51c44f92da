package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigResponse 集計に効いている設定値
type ConfigResponse struct {
	EmploymentInsuranceRate float64 `json:"employmentInsuranceRate"`
	WorkersCompRate         float64 `json:"workersCompRate"`
	TargetMargin            float64 `json:"targetMargin"`
	WarningMargin           float64 `json:"warningMargin"`
	TopN                    int     `json:"topN"`
	RecentLimit             int     `json:"recentLimit"`
	Driver                  string  `json:"driver"`
}

// GetConfig 設定値（読み取り専用）
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	opts := h.agg.Options()
	c.JSON(http.StatusOK, ConfigResponse{
		EmploymentInsuranceRate: h.cfg.Rates.EmploymentInsuranceRate,
		WorkersCompRate:         h.cfg.Rates.WorkersCompRate,
		TargetMargin:            opts.TargetMargin,
		WarningMargin:           opts.WarningMargin,
		TopN:                    opts.TopN,
		RecentLimit:             opts.RecentLimit,
		Driver:                  h.cfg.Data.Driver,
	})
}
