package sessionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface PostgresStorage needs. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so callers can run the storage inside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// DefaultTable is the table PostgresStorage writes to unless WithTable
// overrides it. The schema ships as a goose migration under migrations/.
const DefaultTable = "session_events"

// PostgresStorage persists the event trail in PostgreSQL.
type PostgresStorage struct {
	db    DBTX
	table string
}

// PostgresOption configures PostgresStorage.
type PostgresOption func(*PostgresStorage)

// WithTable overrides the target table name.
func WithTable(name string) PostgresOption {
	return func(s *PostgresStorage) {
		if name != "" {
			s.table = name
		}
	}
}

// NewPostgresStorage creates a storage writing to db. The session_events
// table must exist; apply the package migrations first.
func NewPostgresStorage(db DBTX, opts ...PostgresOption) *PostgresStorage {
	if db == nil {
		panic("sessionlog: db cannot be nil")
	}

	s := &PostgresStorage{
		db:    db,
		table: DefaultTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store persists a single event.
func (s *PostgresStorage) Store(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	query, args, err := s.insertQuery(event)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// StoreBatch persists events in one round trip using a pgx batch.
func (s *PostgresStorage) StoreBatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return err
		}
		query, args, err := s.insertQuery(events[i])
		if err != nil {
			return err
		}
		batch.Queue(query, args...)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%w: %w", ErrStorageFailure, err)
		}
	}
	return nil
}

func (s *PostgresStorage) insertQuery(event Event) (string, []any, error) {
	metadata, err := marshalMetadata(event.Metadata)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, user_id, action, source, error, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.table)

	args := []any{
		event.ID,
		event.SessionID,
		event.UserID,
		string(event.Action),
		event.Source,
		event.Error,
		metadata,
		event.CreatedAt,
	}
	return query, args, nil
}

// Query returns matching events ordered newest first.
func (s *PostgresStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	where, args := s.whereClause(criteria)

	query := fmt.Sprintf(`
		SELECT id, session_id, user_id, action, source, error, metadata, created_at
		FROM %s
		%s
		ORDER BY created_at DESC
	`, s.table, where)

	if criteria.Limit > 0 {
		args = append(args, criteria.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if criteria.Offset > 0 {
		args = append(args, criteria.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return events, nil
}

// Count returns the number of matching events, ignoring pagination fields.
func (s *PostgresStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	where, args := s.whereClause(criteria)

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", s.table, where)

	var n int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return n, nil
}

func (s *PostgresStorage) whereClause(criteria Criteria) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if criteria.SessionID != "" {
		add("session_id = $%d", criteria.SessionID)
	}
	if criteria.UserID != "" {
		add("user_id = $%d", criteria.UserID)
	}
	if len(criteria.Actions) > 0 {
		actions := make([]string, len(criteria.Actions))
		for i, a := range criteria.Actions {
			actions[i] = string(a)
		}
		add("action = ANY($%d)", actions)
	}
	if criteria.Source != "" {
		add("source = $%d", criteria.Source)
	}
	if !criteria.From.IsZero() {
		add("created_at >= $%d", criteria.From)
	}
	if !criteria.To.IsZero() {
		add("created_at < $%d", criteria.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanEvent(rows pgx.Rows) (Event, error) {
	var (
		event     Event
		action    string
		metadata  []byte
		createdAt time.Time
	)

	err := rows.Scan(
		&event.ID,
		&event.SessionID,
		&event.UserID,
		&action,
		&event.Source,
		&event.Error,
		&metadata,
		&createdAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	event.Action = Action(action)
	event.CreatedAt = createdAt

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return Event{}, fmt.Errorf("%w: decode metadata: %w", ErrStorageFailure, err)
		}
	}
	return event, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: encode metadata: %w", ErrEventValidation, err)
	}
	return data, nil
}

var (
	_ Storage        = (*PostgresStorage)(nil)
	_ BatchWriter    = (*PostgresStorage)(nil)
	_ StorageCounter = (*PostgresStorage)(nil)
)
