package audit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/boardprep/boardprep-admin/internal/audit"
	"github.com/boardprep/boardprep-admin/internal/db"
)

func newTestRepo(t *testing.T) *audit.EventRepo {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file:audit_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	if _, err := dbh.Exec(`DELETE FROM audit_log`); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return audit.NewEventRepo(dbh)
}

func TestEventRepo_RecordAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	payload := map[string]any{"new_questions": []int64{4}}
	if err := repo.Record(ctx, "admin", audit.TypeGroupUpdated, "1-2022-5", payload); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "admin", audit.TypeBulkMappingsCreated, "3-2023-null", map[string]any{}); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if e.ID == "" || e.CreatedAt == 0 {
			t.Fatalf("event missing id or timestamp: %+v", e)
		}
	}

	var found bool
	for _, e := range events {
		if e.Type != audit.TypeGroupUpdated {
			continue
		}
		found = true
		if e.Key != "1-2022-5" || e.Actor != "admin" {
			t.Fatalf("unexpected event: %+v", e)
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(e.DataJSON), &data); err != nil {
			t.Fatalf("payload is not valid JSON: %v", err)
		}
	}
	if !found {
		t.Fatalf("GroupUpdated event not listed: %+v", events)
	}
}

func TestEventRepo_ListLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Record(ctx, "admin", audit.TypeMappingDeleted, "mapping:1", nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	events, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}
