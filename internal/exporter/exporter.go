package exporter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"arari/internal/model"
	"arari/internal/period"
)

// シート名
const (
	SheetMonthly   = "月次サマリー"
	SheetCompanies = "派遣先別"
	SheetTrend     = "推移"
)

// Report 出力対象（集計済み）
type Report struct {
	Monthly   model.MonthlySummary
	Employees []model.EmployeeProfit // 期間内の全社員（粗利の降順）
	Companies []model.CompanySummary
	Trend     []model.TrendPoint
}

// Exporter 粗利レポートの xlsx 出力。状態を持たないので並行に使える
type Exporter struct{}

// styles ブックごとのスタイル ID
type styles struct {
	headerStyle  int
	yenStyle     int
	percentStyle int
}

// NewExporter 出力器を作成
func NewExporter() *Exporter {
	return &Exporter{}
}

// FileName ダウンロード用のファイル名（ASCII のみ）
func FileName(label string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	if p, ok := period.Parse(label); ok {
		return fmt.Sprintf("arari_%04d-%02d_%s.xlsx", p.Year, p.Month, suffix)
	}
	return fmt.Sprintf("arari_%s.xlsx", suffix)
}

// Export 3シートのブックを作る。呼び出し側で Close すること
func (e *Exporter) Export(r Report, progress func(ProgressEvent)) (*excelize.File, error) {
	f := excelize.NewFile()

	reportProgress(progress, 5, "ブックを準備しています")
	if err := f.SetSheetName("Sheet1", SheetMonthly); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("シート名の設定に失敗: %w", err)
	}
	for _, name := range []string{SheetCompanies, SheetTrend} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("シート %s の作成に失敗: %w", name, err)
		}
	}
	st := &styles{}
	if err := st.initStyles(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(progress, 20, "月次サマリーを書き込んでいます")
	if err := st.writeMonthly(f, r.Monthly, r.Employees); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(progress, 60, "派遣先別を書き込んでいます")
	if err := st.writeCompanies(f, r.Companies); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(progress, 85, "推移を書き込んでいます")
	if err := st.writeTrend(f, r.Trend); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	reportProgress(progress, 100, "完了")
	return f, nil
}

func (st *styles) initStyles(f *excelize.File) error {
	var err error
	st.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("ヘッダースタイルの作成に失敗: %w", err)
	}

	yenFormat := "#,##0"
	st.yenStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &yenFormat})
	if err != nil {
		return fmt.Errorf("金額スタイルの作成に失敗: %w", err)
	}

	percentFormat := "0.00"
	st.percentStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFormat})
	if err != nil {
		return fmt.Errorf("率スタイルの作成に失敗: %w", err)
	}
	return nil
}

func (st *styles) writeMonthly(f *excelize.File, m model.MonthlySummary, employees []model.EmployeeProfit) error {
	sheet := SheetMonthly

	headline := [][]interface{}{
		{"期間", m.Period},
		{"売上合計", m.TotalRevenue},
		{"コスト合計", m.TotalCost},
		{"粗利合計", m.TotalProfit},
		{"平均粗利率（%）", m.AvgMargin},
		{"稼働人数", m.EmployeeCount},
		{"明細件数", m.RecordCount},
	}
	if m.Delta != nil {
		headline = append(headline,
			[]interface{}{"比較期間", m.Delta.PreviousPeriod},
			[]interface{}{"売上 前月比（%）", m.Delta.RevenueRate},
			[]interface{}{"粗利 前月比（%）", m.Delta.ProfitRate},
			[]interface{}{"粗利率 差（pt）", m.Delta.MarginPoints},
		)
	}
	for i, row := range headline {
		if err := setRow(f, sheet, 1, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "B2", "B4", st.yenStyle); err != nil {
		return err
	}

	// 社員別
	start := len(headline) + 3
	if err := st.writeHeader(f, sheet, start, []string{"順位", "社員番号", "氏名", "派遣先", "売上", "コスト", "粗利", "粗利率（%）"}); err != nil {
		return err
	}
	for i, ep := range employees {
		row := start + 1 + i
		if err := setRow(f, sheet, 1, row, []interface{}{
			i + 1, ep.EmployeeID, ep.Name, ep.DispatchCompany, ep.Revenue, ep.Cost, ep.Profit, ep.Margin,
		}); err != nil {
			return err
		}
	}
	if len(employees) > 0 {
		last := start + len(employees)
		if err := f.SetCellStyle(sheet, cell("E", start+1), cell("G", last), st.yenStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("H", start+1), cell("H", last), st.percentStyle); err != nil {
			return err
		}
	}

	// 粗利率分布
	distStart := start + len(employees) + 3
	if err := st.writeHeader(f, sheet, distStart, []string{"粗利率区分", "件数", "構成比（%）"}); err != nil {
		return err
	}
	for i, b := range m.Distribution {
		if err := setRow(f, sheet, 1, distStart+1+i, []interface{}{b.Label, b.Count, b.Percentage}); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "H", 16)
}

func (st *styles) writeCompanies(f *excelize.File, companies []model.CompanySummary) error {
	sheet := SheetCompanies
	if err := st.writeHeader(f, sheet, 1, []string{
		"派遣先", "稼働人数", "登録人数", "平均時給", "平均単価", "時間当たり粗利",
		"平均粗利率（%）", "売上", "コスト", "粗利", "評価", "集計対象",
	}); err != nil {
		return err
	}

	for i, c := range companies {
		active := "対象"
		if !c.IsActive {
			active = "対象外"
		}
		if err := setRow(f, sheet, 1, i+2, []interface{}{
			c.CompanyName, c.EmployeeCount, c.TotalEmployees, c.AvgHourlyRate, c.AvgBillingRate, c.AvgProfitPerHour,
			c.AvgMargin, c.TotalRevenue, c.TotalCost, c.TotalProfit, marginLabel(c.MarginStatus), active,
		}); err != nil {
			return err
		}
	}
	if len(companies) > 0 {
		last := len(companies) + 1
		if err := f.SetCellStyle(sheet, "D2", cell("F", last), st.yenStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "G2", cell("G", last), st.percentStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "H2", cell("J", last), st.yenStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "L", 14)
}

func (st *styles) writeTrend(f *excelize.File, trend []model.TrendPoint) error {
	sheet := SheetTrend
	if err := st.writeHeader(f, sheet, 1, []string{"期間", "売上", "コスト", "粗利", "平均粗利率（%）", "明細件数"}); err != nil {
		return err
	}
	for i, p := range trend {
		if err := setRow(f, sheet, 1, i+2, []interface{}{p.Period, p.Revenue, p.Cost, p.Profit, p.AvgMargin, p.Records}); err != nil {
			return err
		}
	}
	if len(trend) > 0 {
		last := len(trend) + 1
		if err := f.SetCellStyle(sheet, "B2", cell("D", last), st.yenStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "E2", cell("E", last), st.percentStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "F", 14)
}

func (st *styles) writeHeader(f *excelize.File, sheet string, row int, titles []string) error {
	values := make([]interface{}, 0, len(titles))
	for _, t := range titles {
		values = append(values, t)
	}
	if err := setRow(f, sheet, 1, row, values); err != nil {
		return err
	}
	endCol, err := excelize.ColumnNumberToName(len(titles))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell("A", row), cell(endCol, row), st.headerStyle)
}

func setRow(f *excelize.File, sheet string, col, row int, values []interface{}) error {
	start, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("シート %s の %d 行目の書き込みに失敗: %w", sheet, row, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func marginLabel(s model.MarginStatus) string {
	switch s {
	case model.MarginGood:
		return "良好"
	case model.MarginWarning:
		return "注意"
	default:
		return "要改善"
	}
}
