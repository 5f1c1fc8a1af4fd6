package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv`).WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewWithDB(db)
	require.NoError(t, err)
	return repo, mock
}

func TestNewWithDB_MigrationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv`).WillReturnError(errors.New("disk I/O error"))

	_, err = NewWithDB(db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "running migrations")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_ErrorPaths(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		call    func(repo *SQLite) error
		wantErr string
	}{
		{
			name: "get fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value FROM kv`).
					WithArgs("festival-sessions-2026").
					WillReturnError(sql.ErrConnDone)
			},
			call: func(repo *SQLite) error {
				_, _, err := repo.Get(ctx, "festival-sessions-2026")
				return err
			},
			wantErr: `reading key "festival-sessions-2026"`,
		},
		{
			name: "set fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO kv`).
					WithArgs("festival-sessions-2026", "[]", sqlmock.AnyArg()).
					WillReturnError(errors.New("database or disk is full"))
			},
			call: func(repo *SQLite) error {
				return repo.Set(ctx, "festival-sessions-2026", "[]")
			},
			wantErr: "database or disk is full",
		},
		{
			name: "set many rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO kv`).
					WithArgs("a", "1", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`INSERT INTO kv`).
					WithArgs("b", "2", sqlmock.AnyArg()).
					WillReturnError(errors.New("constraint failed"))
				mock.ExpectRollback()
			},
			call: func(repo *SQLite) error {
				return repo.SetMany(ctx, map[string]string{"a": "1", "b": "2"})
			},
			wantErr: `writing key "b"`,
		},
		{
			name: "set many commits",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO kv`).
					WithArgs("a", "1", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			call: func(repo *SQLite) error {
				return repo.SetMany(ctx, map[string]string{"a": "1"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			err := tt.call(repo)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
