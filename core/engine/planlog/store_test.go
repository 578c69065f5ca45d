package planlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecord(id string, ts time.Time) Record {
	return Record{
		RunID:          id,
		Timestamp:      ts,
		DurationDays:   49,
		CompletionDate: ts.AddDate(0, 0, 70),
		CriticalPath:   []int{1, 4, 5, 7, 14, 15, 17},
		TotalCost:      187000,
		MitigationCost: 800,
		NetBenefit:     2100,
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	jl, err := NewJSONLStore(filepath.Join(dir, "plans.jsonl"))
	if err != nil {
		t.Fatalf("jsonl store: %v", err)
	}
	sq, err := NewSQLiteStore(filepath.Join(dir, "plans.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	return map[string]Store{"jsonl": jl, "sqlite": sq}
}

func TestStoreAppendQuery(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if err := store.Close(); err != nil {
					t.Fatalf("close: %v", err)
				}
			}()
			ctx := context.Background()
			for i := 0; i < 3; i++ {
				rec := sampleRecord(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
				if err := store.Append(ctx, rec); err != nil {
					t.Fatalf("append: %v", err)
				}
			}

			all, err := store.Query(ctx, Query{})
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 records got %d", len(all))
			}
			if all[0].DurationDays != 49 || len(all[0].CriticalPath) != 7 {
				t.Fatalf("record roundtrip mismatch: %+v", all[0])
			}

			late, err := store.Query(ctx, Query{Start: base.Add(90 * time.Minute)})
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(late) != 1 || late[0].RunID != "c" {
				t.Fatalf("time filter failed: %+v", late)
			}

			one, err := store.Query(ctx, Query{RunID: "b"})
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(one) != 1 || one[0].RunID != "b" {
				t.Fatalf("run id filter failed: %+v", one)
			}
		})
	}
}
