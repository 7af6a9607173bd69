package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix     = "post:"
	UserKeyPrefix     = "user:"
	UsernameKeyPrefix = "username:"

	// maxConflictRetries bounds how often a read-write transaction is re-run
	// after losing an optimistic concurrency check to another writer.
	maxConflictRetries = 100
)

func postKey(id uuid.UUID) []byte {
	return []byte(PostKeyPrefix + id.String())
}

func userKey(id uuid.UUID) []byte {
	return []byte(UserKeyPrefix + id.String())
}

func usernameKey(username string) []byte {
	return []byte(UsernameKeyPrefix + strings.ToLower(username))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads key into entity, returning ErrNotFound if it is absent.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func setEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// updateWithRetry runs fn in a read-write transaction. Badger aborts a
// commit whose reads were overwritten by a concurrent commit; fn is then
// re-run against fresh state. Any other error, including domain errors
// returned by fn, ends the loop immediately.
func updateWithRetry(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction conflicted %d times: %w", maxConflictRetries, err)
}
