package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	StorageModeMemory   = "memory"
	StorageModeSQLite   = "sqlite"
	StorageModePostgres = "postgres"
)

func storageModeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_MODE")))
	switch raw {
	case "", StorageModeSQLite, "local", "sqlite3":
		return StorageModeSQLite
	case StorageModeMemory, "mem":
		return StorageModeMemory
	case StorageModePostgres, "postgresql", "pg", "db":
		return StorageModePostgres
	default:
		return raw
	}
}

// NewStoreFromEnv selects the store backend from STORAGE_MODE and returns it
// along with the resolved mode name.
func NewStoreFromEnv(log *logrus.Logger) (Store, string, error) {
	mode := storageModeFromEnv()

	switch mode {
	case StorageModeSQLite:
		store, err := NewSQLiteStoreFromEnv(log)
		if err != nil {
			return nil, mode, err
		}
		return store, mode, nil
	case StorageModePostgres:
		store, err := NewPostgresStoreFromEnv(log)
		if err != nil {
			return nil, mode, err
		}
		return store, mode, nil
	case StorageModeMemory:
		return NewMemoryStore(), mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid STORAGE_MODE %q (supported: %s, %s, %s)",
			mode, StorageModeMemory, StorageModeSQLite, StorageModePostgres)
	}
}
