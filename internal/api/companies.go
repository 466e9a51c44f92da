package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arari/internal/model"
)

type listCompaniesResponse struct {
	LatestPeriod string                 `json:"latestPeriod"`
	Total        int                    `json:"total"`
	Items        []model.CompanySummary `json:"items"`
}

// ListCompanies 派遣先別サマリー（粗利の降順）
// GET /api/companies?includeIgnored=false
func (h *Handler) ListCompanies(c *gin.Context) {
	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}

	includeIgnored := c.DefaultQuery("includeIgnored", "true") != "false"
	all := h.agg.CompanySummaries(ds.employees, ds.records, ds.ignored)
	items := make([]model.CompanySummary, 0, len(all))
	for _, cs := range all {
		if !cs.IsActive && !includeIgnored {
			continue
		}
		items = append(items, cs)
	}

	c.JSON(http.StatusOK, listCompaniesResponse{
		LatestPeriod: h.agg.LatestPeriod(ds.records),
		Total:        len(items),
		Items:        items,
	})
}

type companyDetailResponse struct {
	Summary   model.CompanySummary    `json:"summary"`
	Employees []model.EmployeeSummary `json:"employees"`
}

// GetCompany 派遣先の詳細（所属社員の全期間サマリー付き）
// GET /api/companies/:name
func (h *Handler) GetCompany(c *gin.Context) {
	name := c.Param("name")

	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return
	}

	for _, cs := range h.agg.CompanySummaries(ds.employees, ds.records, ds.ignored) {
		if cs.CompanyName != name {
			continue
		}
		employees := make([]model.EmployeeSummary, 0, cs.TotalEmployees)
		for _, es := range h.agg.EmployeeSummaries(ds.employees, ds.records) {
			if es.DispatchCompany == name {
				employees = append(employees, es)
			}
		}
		c.JSON(http.StatusOK, companyDetailResponse{Summary: cs, Employees: employees})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "派遣先が見つかりません"})
}

type updateCompanyRequest struct {
	Ignored *bool `json:"ignored" binding:"required"`
}

// UpdateCompany 派遣先を集計対象外にする／戻す
// PATCH /api/companies/:name
func (h *Handler) UpdateCompany(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "派遣先名が必要です"})
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が正しくありません"})
		return
	}

	if err := h.repo.SetCompanyIgnored(c.Request.Context(), name, *req.Ignored); err != nil {
		h.internalError(c, "派遣先の更新に失敗しました", err)
		return
	}
	h.logger.Info("company flag updated", zap.String("company", name), zap.Bool("ignored", *req.Ignored))

	c.JSON(http.StatusOK, gin.H{"companyName": name, "ignored": *req.Ignored})
}
