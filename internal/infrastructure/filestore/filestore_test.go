package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/infrastructure/filestore"
)

func TestFileStore_PersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "biz.json")

	fs, err := filestore.Open(path)
	require.NoError(t, err)
	got, err := fs.Load(ctx, "employees")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, fs.Save(ctx, "employees", []byte(`[{"id":"e1"}]`)))
	require.NoError(t, fs.SaveBatch(ctx, map[string][]byte{
		"users":    []byte(`[]`),
		"settings": []byte(`{"name":"Enjaz"}`),
	}))
	require.NoError(t, fs.Close())

	fs, err = filestore.Open(path)
	require.NoError(t, err)
	defer fs.Close()
	got, err = fs.Load(ctx, "employees")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(got))
	got, err = fs.Load(ctx, "settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Enjaz"}`, string(got))
}

func TestFileStore_ReescrituraMasCortaTrunca(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "biz.json")
	fs, err := filestore.Open(path)
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, fs.Save(ctx, "k", []byte(`"un valor bastante largo para el archivo"`)))
	require.NoError(t, fs.Save(ctx, "k", []byte(`1`)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":1}`, string(raw))
}

func TestFileStore_RechazaJSONInvalido(t *testing.T) {
	fs, err := filestore.Open(filepath.Join(t.TempDir(), "biz.json"))
	require.NoError(t, err)
	defer fs.Close()
	assert.Error(t, fs.Save(context.Background(), "k", []byte(`{roto`)))
}

func TestOpen_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biz.json")
	require.NoError(t, os.WriteFile(path, []byte("no es json"), 0o600))
	_, err := filestore.Open(path)
	assert.Error(t, err)
}
