package period

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// 完全一致のみ受け付ける: 2025年10月 / 2025年3月 / 2025年03月
var labelPattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`)

// Period 年月
type Period struct {
	Year  int
	Month int
}

// String 正規形（2025年3月）
func (p Period) String() string {
	return fmt.Sprintf("%d年%d月", p.Year, p.Month)
}

// Before p が q より古いか
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// Parse 期間ラベルを年月に変換する。形式外・月が範囲外なら ok=false
func Parse(label string) (Period, bool) {
	m := labelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if len(m) != 3 {
		return Period{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Period{}, false
	}
	return Period{Year: year, Month: month}, true
}

// Valid 解析可能なラベルか
func Valid(label string) bool {
	_, ok := Parse(label)
	return ok
}

// Compare 年→月の順で比較する。解析できないラベルは常に後ろ（同士は同順位）
func Compare(a, b string) int {
	pa, okA := Parse(a)
	pb, okB := Parse(b)

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	if pa.Year != pb.Year {
		return pa.Year - pb.Year
	}
	return pa.Month - pb.Month
}

// SortAscending 古い順（安定ソート、重複は除去しない）
func SortAscending(labels []string) []string {
	out := append([]string(nil), labels...)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}

// SortDescending 新しい順。解析できないラベルはこちらでも末尾
func SortDescending(labels []string) []string {
	out := append([]string(nil), labels...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, okI := Parse(out[i])
		pj, okJ := Parse(out[j])
		if !okI || !okJ {
			return okI && !okJ
		}
		return pj.Before(pi)
	})
	return out
}

// Latest 最新の解析可能ラベル。無ければ空文字
func Latest(labels []string) string {
	latest := ""
	for _, l := range labels {
		if !Valid(l) {
			continue
		}
		if latest == "" || Compare(l, latest) > 0 {
			latest = l
		}
	}
	return latest
}

// Canonical 解析できれば正規形、できなければ元のラベルをそのまま返す
func Canonical(label string) string {
	if p, ok := Parse(label); ok {
		return p.String()
	}
	return label
}

// Distinct 出現順を保って重複を除く
func Distinct(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
