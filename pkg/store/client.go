package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ruralep/platform/pkg/config"
	"github.com/ruralep/platform/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// record is a single keyed JSON blob. The whole platform persists through
// full-value replacement of these rows.
type record struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (record) TableName() string {
	return "kv_records"
}

// Accessor is the read/write surface shared by the client and its
// transactions, so repositories work the same in and out of a transaction.
type Accessor interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Has(ctx context.Context, key string) (bool, error)
	Keys() Keys
}

type handle struct {
	conn *gorm.DB
	keys Keys
	logg *logger.Logger
}

// Client wraps the sqlite-backed key-value store.
type Client struct {
	handle
}

// Tx is the transactional view handed to WithTx callbacks.
type Tx struct {
	handle
}

// New opens the sqlite file and prepares the key-value table.
func New(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("preparing kv table: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "store opened")
	}

	return &Client{handle: handle{
		conn: conn,
		keys: NewKeys(cfg.KeyPrefix),
		logg: logg,
	}}, nil
}

// Keys returns the prefixed collection key names.
func (h handle) Keys() Keys {
	return h.keys
}

// Load reads the blob at key into dest. An absent key or unreadable blob
// leaves dest untouched and reports found=false, so the caller's pre-set
// default survives. Corrupt data is logged, never surfaced.
func (h handle) Load(ctx context.Context, key string, dest any) (bool, error) {
	var row record
	err := h.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(row.Value), dest); err != nil {
		if h.logg != nil {
			h.logg.Warn(h.logg.WithField(ctx, "key", key), "stored value unreadable, falling back to default")
		}
		return false, nil
	}
	return true, nil
}

// Save serializes value and replaces any prior content at key.
func (h handle) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	err = h.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&record{Key: key, Value: string(raw)}).Error
	if err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// Has reports raw key presence without decoding the blob.
func (h handle) Has(ctx context.Context, key string) (bool, error) {
	var count int64
	err := h.conn.WithContext(ctx).Model(&record{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}
	return count > 0, nil
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	txConn := c.conn.WithContext(ctx).Begin()
	if txConn.Error != nil {
		return txConn.Error
	}

	defer func() {
		if r := recover(); r != nil {
			txConn.Rollback()
			panic(r)
		}
	}()

	tx := &Tx{handle: handle{conn: txConn, keys: c.keys, logg: c.logg}}
	if err := fn(tx); err != nil {
		_ = txConn.Rollback()
		return err
	}

	return txConn.Commit().Error
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
