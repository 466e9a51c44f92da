package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arari/internal/model"
)

type periodsResponse struct {
	Latest string             `json:"latest"`
	Items  []model.PeriodStat `json:"items"`
}

// ListPeriods データがある期間（新しい順）
// GET /api/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	items, err := h.repo.ListAvailablePeriods(c.Request.Context())
	if err != nil {
		h.internalError(c, "期間一覧の取得に失敗しました", err)
		return
	}

	latest := ""
	for _, it := range items {
		if it.Parsed {
			latest = it.Period
			break
		}
	}

	c.JSON(http.StatusOK, periodsResponse{
		Latest: latest,
		Items:  items,
	})
}
