package connector

import (
	"context"
	"database/sql"

	"dbconnectorapi/services/backend"
)

// sqlSession wraps a database/sql handle limited to a single connection.
type sqlSession struct {
	db   *sql.DB
	kind backend.Kind
}

// openSQLSession takes ownership of db and closes it when the ping fails.
func openSQLSession(ctx context.Context, kind backend.Kind, db *sql.DB) (Session, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlSession{db: db, kind: kind}, nil
}

func (s *sqlSession) Query(ctx context.Context, statement string) (*Table, error) {
	rows, err := s.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func (s *sqlSession) Close() error {
	return s.db.Close()
}
