package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenDB(t *testing.T) {
	_, err := Struct{}.OpenDB()
	require.Error(t, err)

	_, err = Struct{URL: "postgres://localhost"}.OpenDB()
	require.ErrorContains(t, err, "unsupported database url")

	db, err := Struct{File: filepath.Join(t.TempDir(), "nested", "prices.db")}.OpenDB()
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, db.Close())

	db, err = Struct{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	_, err = db.Exec("create table t (x integer)")
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
