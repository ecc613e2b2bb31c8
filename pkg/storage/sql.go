package storage

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/shopdash/pkg/db"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientState is a row of the client_state table created by the embedded
// goose migration.
type ClientState struct {
	StateKey  string `gorm:"column:state_key;primaryKey"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (ClientState) TableName() string { return "client_state" }

// SQLStore keeps client state in sqlite or postgres through gorm.
type SQLStore struct {
	client *db.Client
}

func NewSQLStore(client *db.Client) *SQLStore {
	return &SQLStore{client: client}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var row ClientState
	err := s.client.DB().WithContext(ctx).Where("state_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read client state")
	}
	return row.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	row := ClientState{StateKey: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.client.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write client state")
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).Where("state_key = ?", key).Delete(&ClientState{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete client state")
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQLStore) Close() error {
	return s.client.Close()
}
