package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"arari/internal/exporter"
	"arari/internal/period"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export 月次レポートの xlsx をそのまま返す
// GET /api/export?period=2025年3月
func (h *Handler) Export(c *gin.Context) {
	report, label, ok := h.buildReport(c)
	if !ok {
		return
	}

	file, err := h.exporter.Export(report, nil)
	if err != nil {
		h.internalError(c, "出力に失敗しました", err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", contentDisposition(label))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.internalError(c, "ファイルの書き込みに失敗しました", err)
		return
	}
}

// buildReport 出力対象を集計する。失敗時はレスポンス済みで ok=false
func (h *Handler) buildReport(c *gin.Context) (exporter.Report, string, bool) {
	label := strings.TrimSpace(c.Query("period"))
	if label != "" && !period.Valid(label) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "期間は「2025年3月」の形式で指定してください"})
		return exporter.Report{}, "", false
	}

	ds, err := h.load(c.Request.Context())
	if err != nil {
		h.internalError(c, "データの読み込みに失敗しました", err)
		return exporter.Report{}, "", false
	}
	if len(ds.records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "明細データがありません"})
		return exporter.Report{}, "", false
	}

	monthly := h.agg.MonthlySummary(ds.employees, ds.records, label)
	return exporter.Report{
		Monthly:   monthly,
		Employees: h.agg.PeriodEmployees(ds.employees, ds.records, monthly.Period),
		Companies: h.agg.CompanySummaries(ds.employees, ds.records, ds.ignored),
		Trend:     h.agg.ProfitTrend(ds.employees, ds.records),
	}, monthly.Period, true
}

// contentDisposition ASCII 名と UTF-8 名（粗利レポート_2025年3月.xlsx）の両方を付ける
func contentDisposition(label string) string {
	ascii := exporter.FileName(label)
	utf8Name := fmt.Sprintf("粗利レポート_%s.xlsx", label)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, url.PathEscape(utf8Name))
}
