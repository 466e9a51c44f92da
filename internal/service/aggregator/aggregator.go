package aggregator

import (
	"go.uber.org/zap"

	"arari/internal/model"
	"arari/internal/period"
	"arari/internal/service/calculator"
)

// Options 集計の可変点（目標マージン・件数上限）
type Options struct {
	TargetMargin  float64 // この粗利率以上で good
	WarningMargin float64 // この粗利率以上で warning
	TopN          int     // ランキング件数
	RecentLimit   int     // ダッシュボードの直近明細件数
}

// DefaultOptions 既定値
func DefaultOptions() Options {
	return Options{
		TargetMargin:  15,
		WarningMargin: 10,
		TopN:          5,
		RecentLimit:   10,
	}
}

// Aggregator 社員・派遣先・期間別の集計。呼び出し間で状態を持たない
type Aggregator struct {
	calc   *calculator.Calculator
	opts   Options
	logger *zap.Logger
}

// New 集計器を作成
func New(calc *calculator.Calculator, opts Options, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultOptions().RecentLimit
	}
	return &Aggregator{
		calc:   calc,
		opts:   opts,
		logger: logger.Named("aggregator"),
	}
}

// Options 現在の設定
func (a *Aggregator) Options() Options {
	return a.opts
}

// snapshot 1回の呼び出し内だけで使う評価済みデータ
type snapshot struct {
	employees  []*model.Employee          // 社員番号で重複除去済み（先勝ち）
	byID       map[string]*model.Employee // 社員番号 → 社員
	profits    []model.RecordProfit       // records と同じ順序
	byEmployee map[string][]int           // 社員番号 → profits の添字
	byPeriod   map[string][]int           // 正規化期間 → profits の添字
	latest     string                     // 最新期間（正規形）
	unparsed   []string                   // 解析できなかった期間ラベル
}

// evaluate 全明細を1回だけ評価し索引を作る
func (a *Aggregator) evaluate(employees []model.Employee, records []model.PayrollRecord) *snapshot {
	snap := &snapshot{
		employees:  make([]*model.Employee, 0, len(employees)),
		byID:       make(map[string]*model.Employee, len(employees)),
		profits:    make([]model.RecordProfit, 0, len(records)),
		byEmployee: make(map[string][]int),
		byPeriod:   make(map[string][]int),
	}

	for i := range employees {
		e := &employees[i]
		if _, dup := snap.byID[e.EmployeeID]; dup {
			a.logger.Warn("duplicate employee id ignored", zap.String("employee_id", e.EmployeeID))
			continue
		}
		snap.byID[e.EmployeeID] = e
		snap.employees = append(snap.employees, e)
	}

	unparsedCount := make(map[string]int)
	labels := make([]string, 0, len(records))
	for i := range records {
		r := &records[i]
		p := a.calc.Evaluate(r, snap.byID[r.EmployeeID])
		p.Period = period.Canonical(r.Period)

		idx := len(snap.profits)
		snap.profits = append(snap.profits, p)
		snap.byEmployee[r.EmployeeID] = append(snap.byEmployee[r.EmployeeID], idx)

		if !period.Valid(p.Period) {
			if unparsedCount[r.Period] == 0 {
				snap.unparsed = append(snap.unparsed, r.Period)
			}
			unparsedCount[r.Period]++
			continue
		}
		snap.byPeriod[p.Period] = append(snap.byPeriod[p.Period], idx)
		labels = append(labels, p.Period)
	}

	for _, label := range snap.unparsed {
		a.logger.Warn("unparsed period label excluded from timeline",
			zap.String("period", label),
			zap.Int("records", unparsedCount[label]),
		)
	}

	snap.latest = period.Latest(labels)
	return snap
}

// LatestPeriod 明細中の最新期間。解析できる期間が無ければ空文字
func (a *Aggregator) LatestPeriod(records []model.PayrollRecord) string {
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, period.Canonical(r.Period))
	}
	return period.Latest(labels)
}

// EvaluateAll 明細ごとの粗利（入力順）
func (a *Aggregator) EvaluateAll(employees []model.Employee, records []model.PayrollRecord) []model.RecordProfit {
	return a.evaluate(employees, records).profits
}

// marginStatus 目標マージンとの比較
func (a *Aggregator) marginStatus(margin float64) model.MarginStatus {
	switch {
	case margin >= a.opts.TargetMargin:
		return model.MarginGood
	case margin >= a.opts.WarningMargin:
		return model.MarginWarning
	default:
		return model.MarginPoor
	}
}

// profitTotals 売上・コスト・粗利の合計と粗利率の単純平均
type profitTotals struct {
	revenue   float64
	cost      float64
	profit    float64
	marginSum float64
	count     int
}

func (t *profitTotals) add(p *model.RecordProfit) {
	t.revenue += p.BillingAmount
	t.cost += p.Cost.Total
	t.profit += p.GrossProfit
	t.marginSum += p.ProfitMargin
	t.count++
}

func (t *profitTotals) avgMargin() float64 {
	if t.count == 0 {
		return 0
	}
	return t.marginSum / float64(t.count)
}

func (t *profitTotals) avgProfit() float64 {
	if t.count == 0 {
		return 0
	}
	return t.profit / float64(t.count)
}
