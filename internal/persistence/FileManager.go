package persistence

import (
	"fmt"
	"sid/internal/models"
	"sid/internal/persistence/interfaces"
	"sid/internal/providers"
	"sid/internal/services"

	json "github.com/goccy/go-json"
)

// Blob names of the persisted layout: one blob per logical store.
const (
	BlobUsers     = "users"
	BlobRecords   = "records"
	BlobAnalytics = "analytics"
)

type FileManager struct {
	service    services.RegistryServiceInterface
	store      interfaces.BlobStoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(store interfaces.BlobStoreInterface, compressor interfaces.CompressorInterface, service services.RegistryServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		store:      store,
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) writeBlob(name string, v any) error {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", name, err)
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("compress blob %s: %w", name, err)
	}
	if err = f.store.Write(name, data); err != nil {
		return fmt.Errorf("write blob %s: %s: %w", name, err, models.ErrStorageUnavailable)
	}
	return nil
}

// SaveAll persists one consistent registry snapshot across the three blobs.
// The blobs are written sequentially, so a mid-save failure can leave the
// on-disk set mixed across two snapshots until the next successful save
// rewrites all three; the restore path tolerates the skew.
func (f *FileManager) SaveAll() error {
	storage := f.service.GetSnapshot()

	if err := f.writeBlob(BlobUsers, storage.Users); err != nil {
		return err
	}
	if err := f.writeBlob(BlobRecords, storage.Records); err != nil {
		return err
	}
	return f.writeBlob(BlobAnalytics, storage.Analytics)
}

// readBlob loads and decodes one blob into out. A missing blob is fine; a
// blob that cannot be decompressed or parsed is logged and treated as empty
// rather than failing the whole restore.
func (f *FileManager) readBlob(name string, out any) error {
	data, err := f.store.Read(name)
	if err != nil {
		return fmt.Errorf("read blob %s: %s: %w", name, err, models.ErrStorageUnavailable)
	}
	if data == nil {
		return nil
	}

	jsonData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Blob %s is not decompressible, starting empty: %s", name, err)
		return nil
	}
	if err = json.Unmarshal(jsonData, out); err != nil {
		f.logger.Warnf(providers.TypeApp, "Blob %s is corrupt, starting empty: %s", name, err)
	}
	return nil
}

// LoadAll restores the registry from the three blobs.
func (f *FileManager) LoadAll() error {
	storage := &models.Storage{
		Users:     make(map[string]*models.UserProfile),
		Records:   make(map[string][]models.Record),
		Analytics: models.NewGlobalAnalytics(),
	}

	if err := f.readBlob(BlobUsers, &storage.Users); err != nil {
		return err
	}
	if err := f.readBlob(BlobRecords, &storage.Records); err != nil {
		return err
	}
	if err := f.readBlob(BlobAnalytics, storage.Analytics); err != nil {
		return err
	}

	f.service.PutSnapshot(storage)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
