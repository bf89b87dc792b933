package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/securebanking/core-ledger/internal/config"
)

type Storage struct {
	db  *sql.DB
	Bob bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	return &Storage{
		db:  db,
		Bob: bob.NewDB(db),
	}, nil
}

// Read returns a reader bound to the pooled connection, outside any
// transaction.
func (s *Storage) Read() *Reader {
	return NewReader(s.Bob)
}

// Write begins a database transaction and returns a Writer scoped to it.
// The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.Bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}
