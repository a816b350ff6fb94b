package storage

import "errors"

var ErrKeyNotFound = errors.New("key not found in local store")

// Store is the durable local key-value store shared by all components.
// Writes to different keys are independent; no cross-key transactionality
// is provided. Clear removes every key, not a subset.
type Store interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Clear() error
}
