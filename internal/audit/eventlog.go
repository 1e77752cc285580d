package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeGroupUpdated        = "GroupUpdated"
	TypeBulkMappingsCreated = "BulkMappingsCreated"
	TypeMappingUpdated      = "MappingUpdated"
	TypeMappingDeleted      = "MappingDeleted"
)

type Event struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Record marshals payload and appends one event. Payload marshal failures
// are reported; the caller decides whether auditing is fatal for the flow.
func (r *EventRepo) Record(ctx context.Context, actor, typ, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.Append(ctx, Event{
		ID:       uuid.NewString(),
		Actor:    actor,
		Type:     typ,
		Key:      key,
		DataJSON: string(data),
	})
}

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Actor, e.Type, e.Key, e.DataJSON, e.CreatedAt)
	return err
}

// List returns the most recent events, newest first.
func (r *EventRepo) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor, typ, key, data, created_at
		   FROM audit_log
		  ORDER BY created_at DESC, id DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Actor, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
