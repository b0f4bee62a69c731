package entity

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neftit-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (l StringList) Contains(s string) bool {
	return slices.Contains(l, s)
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	list := []string{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}

	*l = list
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]string(l))
	return string(b), err
}

// MigrateTable creates or updates all tables. It is used by tests and the sqlite driver, other
// drivers run the sql migrations.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&DiscordRoleCache{},
		&NFTClaim{},
	)
}
