package pgutil

import (
	"database/sql"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"sync"
)

// BasePostgresStorage tracks the aggregates a storage touched during a unit of work
// together with events the storage raised itself.
type BasePostgresStorage struct {
	DB      storage.DBContext
	mu      sync.Mutex
	seen    map[string]domain.EventSource
	pending []domain.Event
}

func NewBasePostgresStorage(db storage.DBContext) *BasePostgresStorage {
	return &BasePostgresStorage{
		DB:   db,
		seen: make(map[string]domain.EventSource),
	}
}

func (s *BasePostgresStorage) CollectEvents() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.pending
	for _, src := range s.seen {
		events = append(events, src.PopEvents()...)
	}
	s.seen = make(map[string]domain.EventSource)
	s.pending = nil
	return events
}

func (s *BasePostgresStorage) Close() {
	s.mu.Lock()
	s.seen = make(map[string]domain.EventSource)
	s.pending = nil
	s.mu.Unlock()
}

func (s *BasePostgresStorage) MarkSeen(id string, src domain.EventSource) {
	s.mu.Lock()
	s.seen[id] = src
	s.mu.Unlock()
}

func (s *BasePostgresStorage) Emit(events ...domain.Event) {
	s.mu.Lock()
	s.pending = append(s.pending, events...)
	s.mu.Unlock()
}

func ViolatesConstraint(err error, constraintName string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) &&
		pgErr.ConstraintName == constraintName
}

func MakeUpdateQuery(stmt *sqlf.Stmt, updates diff.Changelog) *sqlf.Stmt {

	for _, upd := range updates {
		if len(upd.Path) > 1 {
			panic("cannot process updates in nested structures")
		}

		stmt = stmt.Set(upd.Path[0], upd.To)
	}
	return stmt
}

func AssertUpdated(res sql.Result, err error, notUpdatedError error) error {
	if err != nil {
		return storage.InternalError(err)
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return storage.InternalError(err)
	}

	if affected == 0 {
		return notUpdatedError
	}
	return nil
}
