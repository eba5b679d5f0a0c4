package persistence

import (
	"os"
	"path/filepath"
	"sid/internal/persistence/interfaces"
	"sid/internal/structures"
)

// FileBlobStore keeps each named blob as one file under the persistence
// directory. Writes go through a temp file with fsync and rename so a
// crashed write never leaves a half-replaced blob behind.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(conf *structures.Config) (interfaces.BlobStoreInterface, error) {
	if err := os.MkdirAll(conf.Persistence.Dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBlobStore{dir: conf.Persistence.Dir}, nil
}

func (s *FileBlobStore) path(name string) string {
	return filepath.Join(s.dir, name+".dat")
}

func (s *FileBlobStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *FileBlobStore) Write(name string, data []byte) error {
	fileName := s.path(name)
	tmpFile := fileName + ".tmp"

	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
