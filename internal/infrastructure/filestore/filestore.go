// Package filestore persiste todas las claves en un único archivo JSON.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/enjaz/bizledger/internal/domain/repository"
)

var _ repository.BatchStore = (*FileStore)(nil)

// FileStore documento JSON {clave: valor} reescrito completo en cada guardado.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	data map[string]json.RawMessage
}

// Open abre (o crea) el archivo en path.
func Open(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear directorio: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("filestore: abrir %s: %w", path, err)
	}
	fs := &FileStore{file: f, data: map[string]json.RawMessage{}}
	if err := fs.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return fs, nil
}

// Close cierra el archivo.
func (fs *FileStore) Close() error { return fs.file.Close() }

func (fs *FileStore) load() error {
	info, err := fs.file.Stat()
	if err != nil {
		return fmt.Errorf("filestore: stat: %w", err)
	}
	if info.Size() == 0 {
		return fs.flushLocked()
	}
	if err := json.NewDecoder(fs.file).Decode(&fs.data); err != nil {
		return fmt.Errorf("filestore: archivo corrupto: %w", err)
	}
	if fs.data == nil {
		fs.data = map[string]json.RawMessage{}
	}
	return nil
}

func (fs *FileStore) flushLocked() error {
	if _, err := fs.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(fs.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fs.data); err != nil {
		return err
	}
	// truncar por si el contenido nuevo es más corto
	pos, err := fs.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := fs.file.Truncate(pos); err != nil {
		return err
	}
	return fs.file.Sync()
}

// Load devuelve el valor de key o nil si no existe.
func (fs *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v, ok := fs.data[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

// Save reemplaza key y reescribe el archivo.
func (fs *FileStore) Save(ctx context.Context, key string, value []byte) error {
	return fs.SaveBatch(ctx, map[string][]byte{key: value})
}

// SaveBatch reemplaza varias claves con una sola escritura. Si la escritura
// falla se restauran los valores anteriores en memoria.
func (fs *FileStore) SaveBatch(ctx context.Context, values map[string][]byte) error {
	for k, v := range values {
		if !json.Valid(v) {
			return fmt.Errorf("filestore: valor de %s no es JSON válido", k)
		}
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	prev := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		if old, ok := fs.data[k]; ok {
			prev[k] = old
		}
		fs.data[k] = bytes.Clone(v)
	}
	if err := fs.flushLocked(); err != nil {
		for k := range values {
			if old, ok := prev[k]; ok {
				fs.data[k] = old
			} else {
				delete(fs.data, k)
			}
		}
		return fmt.Errorf("filestore: escribir: %w", err)
	}
	return nil
}
