package local

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"tucing-suites-calendar/internal/platform/errs"
)

// BlobStore es un almacenamiento clave -> bytes (el equivalente a localStorage).
type BlobStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Put(ctx context.Context, key string, data []byte) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileBlobStore guarda cada clave como <dir>/<key>.json.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "local: create dir %s", dir)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (s *FileBlobStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", errs.New("local: invalid blob key " + key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrapf(err, "local: read %s", p)
	}
	return data, true, nil
}

// Put escribe en un temporal y renombra, así un corte nunca deja el blob a medias.
func (s *FileBlobStore) Put(ctx context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errs.Wrap(err, "local: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errs.Wrap(err, "local: write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrap(err, "local: close temp file")
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrapf(err, "local: rename to %s", p)
	}
	return nil
}

// MemoryBlobStore es un BlobStore en memoria (tests y modo efímero).
type MemoryBlobStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{data: map[string][]byte{}}
}

func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(data))
	copy(v, data)
	s.data[key] = v
	return nil
}
