package dsn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/db/dsn"
)

func TestMySQL(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "with extras",
			db:   config.DB{User: "um", Password: "pw", Host: "db", Port: 3306, Name: "users", Extras: "parseTime=true"},
			want: "um:pw@tcp(db:3306)/users?parseTime=true",
		},
		{
			name: "without extras",
			db:   config.DB{User: "um", Password: "pw", Host: "db", Port: 3306, Name: "users"},
			want: "um:pw@tcp(db:3306)/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dsn.MySQL(tt.db))
		})
	}
}

func TestPostgres(t *testing.T) {
	got := dsn.Postgres(config.DB{
		User: "um", Password: "p@ss", Host: "db", Port: 5432, Name: "users", Extras: "sslmode=disable",
	})

	assert.Equal(t, "postgres://um:p%40ss@db:5432/users?sslmode=disable", got)
}

func TestSQLite(t *testing.T) {
	assert.Equal(t, "um.db?_pragma=foreign_keys(1)", dsn.SQLite(config.DB{Path: "um.db"}))
	assert.Equal(t,
		"file::memory:?_pragma=foreign_keys(1)&cache=shared",
		dsn.SQLite(config.DB{Path: "file::memory:", Extras: "cache=shared"}),
	)
}
