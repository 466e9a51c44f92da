package period

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  Period
		ok    bool
	}{
		{"二桁月", "2025年10月", Period{2025, 10}, true},
		{"一桁月", "2025年2月", Period{2025, 2}, true},
		{"ゼロ埋め", "2025年02月", Period{2025, 2}, true},
		{"前後空白", " 2024年12月 ", Period{2024, 12}, true},
		{"月が範囲外", "2025年13月", Period{}, false},
		{"ゼロ月", "2025年0月", Period{}, false},
		{"ISO形式", "2025-10", Period{}, false},
		{"余計な文字", "2025年10月分", Period{}, false},
		{"二桁年", "25年10月", Period{}, false},
		{"空文字", "", Period{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.label)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Parse(%q) = %v,%v want %v,%v", tt.label, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCompare_NumericNotLexicographic(t *testing.T) {
	t.Parallel()

	if got := Compare("2025年10月", "2025年9月"); got <= 0 {
		t.Fatalf("Compare(2025年10月, 2025年9月) = %d, want > 0", got)
	}
	if got := Compare("2025年2月", "2025年10月"); got >= 0 {
		t.Fatalf("Compare(2025年2月, 2025年10月) = %d, want < 0", got)
	}
	if got := Compare("2024年12月", "2025年1月"); got >= 0 {
		t.Fatalf("year should dominate month, got %d", got)
	}
	if got := Compare("2025年3月", "2025年03月"); got != 0 {
		t.Fatalf("zero padded label should compare equal, got %d", got)
	}
}

func TestCompare_UnparsedSortsLast(t *testing.T) {
	t.Parallel()

	if got := Compare("不明", "2025年1月"); got <= 0 {
		t.Fatalf("unparsed should sort after parsed, got %d", got)
	}
	if got := Compare("2025年1月", "不明"); got >= 0 {
		t.Fatalf("parsed should sort before unparsed, got %d", got)
	}
	if got := Compare("不明", "N/A"); got != 0 {
		t.Fatalf("two unparsed labels should be equal, got %d", got)
	}
}

func TestSortAscending(t *testing.T) {
	t.Parallel()

	in := []string{"2025年10月", "bad", "2025年2月", "2024年12月", "2025年2月", "???"}
	got := SortAscending(in)
	want := []string{"2024年12月", "2025年2月", "2025年2月", "2025年10月", "bad", "???"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortAscending = %v, want %v", got, want)
	}
	if in[0] != "2025年10月" {
		t.Fatalf("input slice must not be modified: %v", in)
	}
}

func TestSortDescending(t *testing.T) {
	t.Parallel()

	in := []string{"2025年2月", "bad", "2025年10月", "2024年12月", "???"}
	got := SortDescending(in)
	want := []string{"2025年10月", "2025年2月", "2024年12月", "bad", "???"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortDescending = %v, want %v", got, want)
	}
}

func TestSortDescending_Idempotent(t *testing.T) {
	t.Parallel()

	in := []string{"2025年3月", "x", "2025年03月", "2023年7月", "2025年11月", "y"}
	once := SortDescending(in)
	twice := SortDescending(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent:\n once: %v\ntwice: %v", once, twice)
	}
	// 同順位は入力順を保つ
	if once[1] != "2025年3月" || once[2] != "2025年03月" {
		t.Fatalf("equal keys must keep input order: %v", once)
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	if got := Latest([]string{"2025年2月", "2025年10月", "bad", "2025年9月"}); got != "2025年10月" {
		t.Fatalf("Latest = %q, want 2025年10月", got)
	}
	if got := Latest([]string{"bad", ""}); got != "" {
		t.Fatalf("Latest of unparsed labels = %q, want empty", got)
	}
}

func TestCanonicalAndDistinct(t *testing.T) {
	t.Parallel()

	if got := Canonical("2025年03月"); got != "2025年3月" {
		t.Fatalf("Canonical = %q", got)
	}
	if got := Canonical("bad"); got != "bad" {
		t.Fatalf("Canonical(bad) = %q", got)
	}
	got := Distinct([]string{"a", "b", "a", "c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Distinct = %v", got)
	}
}
