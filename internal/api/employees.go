package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arari/internal/model"
	"arari/internal/period"
	"arari/internal/store"
)

// ListEmployees 社員別サマリー（全期間、粗利の降順）
// GET /api/employees?company=A社
func (h *Handler) ListEmployees(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}

	company, filtered := c.GetQuery("company")
	all := h.agg.EmployeeSummaries(ds.employees, ds.records)
	items := make([]model.EmployeeSummary, 0, len(all))
	for _, es := range all {
		if filtered && es.DispatchCompany != company {
			continue
		}
		items = append(items, es)
	}

	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

type employeeDetailResponse struct {
	Employee model.Employee       `json:"employee"`
	Records  []model.RecordProfit `json:"records"` // 新しい順
}

// GetEmployee 社員1人の明細別粗利
// GET /api/employees/:id
func (h *Handler) GetEmployee(c *gin.Context) {
	id := c.Param("id")

	employee, err := h.repo.GetEmployee(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "社員が見つかりません"})
			return
		}
		h.internalError(c, "社員の取得に失敗しました", err)
		return
	}

	records, err := h.repo.ListPayrollRecords(c.Request.Context())
	if err != nil {
		h.internalError(c, "明細の取得に失敗しました", err)
		return
	}

	own := make([]model.PayrollRecord, 0)
	for _, r := range records {
		if r.EmployeeID == id {
			own = append(own, r)
		}
	}

	profits := h.agg.EvaluateAll([]model.Employee{*employee}, own)
	labels := make([]string, 0, len(profits))
	byPeriod := make(map[string][]model.RecordProfit, len(profits))
	for _, p := range profits {
		labels = append(labels, p.Period)
		byPeriod[p.Period] = append(byPeriod[p.Period], p)
	}
	sorted := make([]model.RecordProfit, 0, len(profits))
	for _, label := range period.SortDescending(period.Distinct(labels)) {
		sorted = append(sorted, byPeriod[label]...)
	}

	c.JSON(http.StatusOK, employeeDetailResponse{Employee: *employee, Records: sorted})
}
