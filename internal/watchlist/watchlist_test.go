package watchlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write watch-list: %v", err)
	}
	return path
}

func TestLoad_SectionedGroups(t *testing.T) {
	path := writeList(t, `v40,
,RELIANCE
,TCS
v40next,
,HDFCBANK
v200,
,SBIN
,PNB
`)
	groups, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Name != "v40" || groups[1].Name != "v40next" || groups[2].Name != "v200" {
		t.Errorf("group order not preserved: %s, %s, %s",
			groups[0].Name, groups[1].Name, groups[2].Name)
	}
	if len(groups[0].Symbols) != 2 || groups[0].Symbols[0] != "RELIANCE" || groups[0].Symbols[1] != "TCS" {
		t.Errorf("v40 symbols wrong: %v", groups[0].Symbols)
	}
	if len(groups[2].Symbols) != 2 {
		t.Errorf("v200 symbols wrong: %v", groups[2].Symbols)
	}
}

func TestLoad_TrendFilterMarking(t *testing.T) {
	path := writeList(t, `v40,
,TCS
V200,
,SBIN
`)
	groups, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups[0].TrendFiltered {
		t.Error("v40 should not be trend filtered")
	}
	if !groups[1].TrendFiltered {
		t.Error("v200 should be trend filtered regardless of case")
	}
}

func TestLoad_IgnoresBlanksAndPreamble(t *testing.T) {
	path := writeList(t, `group,symbol
,STRAY
v40,
,
,RELIANCE
,  TCS
,
`)
	groups, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %v", groups[0].Symbols)
	}
	if groups[0].Symbols[1] != "TCS" {
		t.Errorf("symbols should be trimmed: %v", groups[0].Symbols)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeList(t, "")
	groups, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
