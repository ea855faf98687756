// Package timeutil 时间戳解析测试
package timeutil

import (
	"testing"
	"time"
)

func TestParse_HumanReadable_PST(t *testing.T) {
	got, err := Parse("Jan 20, 2025 at 10:04 AM PST")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// PST = UTC-8，对应 2025-01-20T18:04:00Z
	want := time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("got %s, want %s", got.UTC(), want)
	}
}

func TestParse_HumanReadable_CaseAndSpacing(t *testing.T) {
	cases := []string{
		"jan 20, 2025 at 10:04am PST",
		"JAN 20, 2025 at 10:04 AM pst",
		"January 20, 2025 at 10:04AM PST",
	}
	want := time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC)
	for _, c := range cases {
		got, err := Parse(c)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", c, err)
		}
		if !got.UTC().Equal(want) {
			t.Fatalf("Parse(%q) = %s, want %s", c, got.UTC(), want)
		}
	}
}

func TestParse_HumanReadable_PMAndMidnight(t *testing.T) {
	got, err := Parse("Mar 5, 2024 at 1:30 PM EST")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// EST = UTC-5，13:30 EST = 18:30 UTC
	want := time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("got %s, want %s", got.UTC(), want)
	}

	got, err = Parse("Mar 5, 2024 at 12:00 AM UTC")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("12 AM: got %s, want %s", got.UTC(), want)
	}
}

func TestParse_UnknownAbbrevDefaultsToPST(t *testing.T) {
	got, err := Parse("Jan 20, 2025 at 10:04 AM XYZ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("未识别时区应回退 PST 偏移: got %s, want %s", got.UTC(), want)
	}
}

func TestParse_FallbackLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-20T18:04:00Z":  time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC),
		"2025-01-20 18:04:00":   time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC),
		"2025-01-20":            time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		"1/20/2025 18:04":       time.Date(2025, 1, 20, 18, 4, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		if !got.UTC().Equal(want) {
			t.Fatalf("Parse(%q) = %s, want %s", in, got.UTC(), want)
		}
	}
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"", "not a date", "99/99/9999"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) 应当失败", in)
		}
	}
}

func TestDays(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(36 * time.Hour)
	if got := Days(a, b); got != 1.5 {
		t.Fatalf("Days = %f, want 1.5", got)
	}
}

func TestDayIndex(t *testing.T) {
	base := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	same := time.Date(2025, 1, 1, 0, 1, 0, 0, time.UTC)
	next := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	if got := DayIndex(base, same); got != 0 {
		t.Fatalf("同日序号 = %d, want 0", got)
	}
	if got := DayIndex(base, next); got != 1 {
		t.Fatalf("次日序号 = %d, want 1", got)
	}
}
