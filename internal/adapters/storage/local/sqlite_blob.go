package local

import (
	"context"
	"errors"
	"time"

	"tucing-suites-calendar/internal/platform/errs"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// blobRecord es la fila de la tabla kv_blobs.
type blobRecord struct {
	Key       string `gorm:"column:blob_key;primaryKey;size:128"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (blobRecord) TableName() string { return "kv_blobs" }

// SQLiteBlobStore guarda los blobs en una tabla clave/valor de SQLite vía gorm.
type SQLiteBlobStore struct {
	db *gorm.DB
}

// OpenSQLite usa el driver puro Go (modernc) registrado como "sqlite", sin CGO.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		return nil, errs.Wrapf(err, "local: open sqlite %s", dsn)
	}
	return db, nil
}

func NewSQLiteBlobStore(db *gorm.DB) (*SQLiteBlobStore, error) {
	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, errs.Wrap(err, "local: migrate kv_blobs")
	}
	return &SQLiteBlobStore{db: db}, nil
}

func (s *SQLiteBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec blobRecord
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrapf(err, "local: get blob %s", key)
	}
	return rec.Value, true, nil
}

func (s *SQLiteBlobStore) Put(ctx context.Context, key string, data []byte) error {
	rec := blobRecord{Key: key, Value: data, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blob_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return errs.Wrapf(err, "local: put blob %s", key)
	}
	return nil
}
