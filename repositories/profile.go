//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
package repositories

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

type IProfileRepository interface {
	Get(userID string) (domain.Profile, error)
	Create(profile domain.Profile) (domain.Profile, error)
	Update(userID string, mutate func(*domain.Profile)) (domain.Profile, error)
}

// ProfileRepository persists user profiles in BadgerDB as JSON values.
// The key is formatted as "profile:{user_id}" so the whole profile keyspace
// can be scanned with a single prefix (see cmd/inspect).
type ProfileRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewProfileRepository(db *badger.DB, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: log}
}

func profileKey(userID string) []byte {
	return []byte(fmt.Sprintf("profile:%s", userID))
}

func (r ProfileRepository) Get(userID string) (domain.Profile, error) {
	var profile domain.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Profile{}, serrors.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Create persists a new profile and fails if one already exists for the
// same user. The existence check and the write share a single transaction.
func (r ProfileRepository) Create(profile domain.Profile) (domain.Profile, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		key := profileKey(profile.ID)
		if _, err := txn.Get(key); err == nil {
			return serrors.ErrProfileAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	r.log.Debug("Profile created", "user_id", profile.ID)
	return profile, nil
}

// Update applies mutate to the stored profile inside one transaction,
// so concurrent partial updates cannot overwrite each other's fields.
func (r ProfileRepository) Update(userID string, mutate func(*domain.Profile)) (domain.Profile, error) {
	var profile domain.Profile
	err := r.db.Update(func(txn *badger.Txn) error {
		key := profileKey(userID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return serrors.ErrProfileNotFound
		}
		if err != nil {
			return err
		}
		if err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		}); err != nil {
			return err
		}

		mutate(&profile)

		data, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}
