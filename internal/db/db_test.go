package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"motoshop-be/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableDriver hands out connections whose ping always fails.
type unreachableDriver struct{}

type unreachableConn struct{}

func (unreachableDriver) Open(string) (driver.Conn, error) { return unreachableConn{}, nil }

func (unreachableConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("offline") }
func (unreachableConn) Close() error                        { return nil }
func (unreachableConn) Begin() (driver.Tx, error)           { return nil, errors.New("offline") }
func (unreachableConn) Ping(context.Context) error          { return errors.New("connection refused") }

func init() {
	sql.Register("catalog_unreachable", unreachableDriver{})
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "full",
			cfg:  config.Config{DBHost: "db", DBUser: "motoshop", DBPassword: "pw", DBName: "catalog", DBPort: "5433"},
			want: "host=db user=motoshop password=pw dbname=catalog port=5433 sslmode=disable",
		},
		{
			name: "empty fields stay positional",
			cfg:  config.Config{DBHost: "localhost"},
			want: "host=localhost user= password= dbname= port= sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(&tt.cfg))
		})
	}
}

func TestNewDatabase_PoolSettings(t *testing.T) {
	cfg := &config.Config{DBHost: "pool-test", DBName: "catalog"}

	mockDB, mock, err := sqlmock.NewWithDSN(buildDSN(cfg))
	require.NoError(t, err)
	defer mockDB.Close()

	database, err := newDatabaseWithDriver(cfg, "sqlmock")
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, 25, database.Stats().MaxOpenConnections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDatabase_PingFailure(t *testing.T) {
	database, err := newDatabaseWithDriver(&config.Config{DBHost: "offline"}, "catalog_unreachable")

	require.Error(t, err)
	assert.Nil(t, database)
	assert.ErrorContains(t, err, "failed to ping DB")
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	database, err := newDatabaseWithDriver(&config.Config{}, "no_such_driver")

	require.Error(t, err)
	assert.Nil(t, database)
	assert.ErrorContains(t, err, "failed to connect to DB")
}

// InitDB exits the process on failure, so the failing call runs in a child
// test binary.
func TestInitDB_ExitsWhenUnreachable(t *testing.T) {
	if os.Getenv("CATALOG_INITDB_CHILD") == "1" {
		InitDB(&config.Config{DBHost: "127.0.0.1", DBPort: "1", DBName: "catalog"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_ExitsWhenUnreachable")
	cmd.Env = append(os.Environ(), "CATALOG_INITDB_CHILD=1")

	done := make(chan error, 1)
	go func() { done <- cmd.Run() }()

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.False(t, exitErr.Success())
	case <-time.After(30 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("InitDB did not exit")
	}
}
