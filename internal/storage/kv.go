package storage

import (
	"context"
	"errors"
)

// Storage keys. Two independent JSON blobs mirror the persisted collections
// and a third holds the session user.
const (
	KeyJournal = "nexus_journal"
	KeyChat    = "nexus_chat"
	KeyUser    = "nexus_user"
)

// ErrNoValue is returned by Load when nothing is stored under the key.
var ErrNoValue = errors.New("no stored value")

// KV is the durable key-value storage the adapter mirrors into. Writes are
// whole-value overwrites; there is no versioning and no delta encoding.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
