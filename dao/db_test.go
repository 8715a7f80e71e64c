package dao

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/asdine/storm/v3"
	"github.com/stretchr/testify/require"
)

func TestGetClient(t *testing.T) {
	dir, err := ioutil.TempDir(os.TempDir(), "storm")
	require.NoError(t, err)

	dbPath := filepath.Join(dir, "storm.db")
	db, err := GetClient(dbPath)
	require.NoError(t, err)

	defer func() {
		db.Close()
		os.RemoveAll(dir)
	}()

	require.FileExists(t, dbPath, "Expected that db file exists")

	db2, err := GetClient(filepath.Join(dir, "other.db"))
	require.NoError(t, err)
	require.Equal(t, db, db2)
}

func TestOpenExistingDb(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	stormDb := db.(*storm.DB)
	dbPath := stormDb.Bolt.Path()
	_ = stormDb.Close()

	clnt, err := open(dbPath)

	require.NoError(t, err)
	require.NotEmpty(t, clnt)
	require.NoError(t, clnt.Close())
}

func createDB(t errorHandler) (Db, func()) {
	dir, err := ioutil.TempDir(os.TempDir(), "storm")
	if err != nil {
		t.Error(err)
	}
	db, err := open(filepath.Join(dir, "storm.db"))
	if err != nil {
		t.Error(err)
	}

	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

type errorHandler interface {
	Error(args ...interface{})
}
