package repositories

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	repository := NewProfileRepository(newTestDB(t), log)

	profile := domain.Profile{
		ID:             "user-123",
		Nickname:       "Minsu",
		BirthDate:      "1995-04-02",
		Gender:         "male",
		Height:         178,
		Weight:         72,
		SkillLevel:     "intermediate",
		FavoriteSports: []string{"tennis", "badminton"},
		Sportsmanship:  domain.DefaultSportsmanship,
	}

	t.Run("should create then read back the same profile", func(t *testing.T) {
		created, err := repository.Create(profile)
		req.NoError(err)
		req.Equal(profile, created)

		stored, err := repository.Get("user-123")
		req.NoError(err)
		req.Equal(profile, stored)
	})

	t.Run("should refuse a duplicate create", func(t *testing.T) {
		_, err := repository.Create(profile)

		req.ErrorIs(err, serrors.ErrProfileAlreadyExists)
	})

	t.Run("should report a missing profile", func(t *testing.T) {
		_, err := repository.Get("nobody")

		req.ErrorIs(err, serrors.ErrProfileNotFound)
	})
}

func TestProfileRepository_Update(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	repository := NewProfileRepository(newTestDB(t), log)

	_, err := repository.Create(domain.Profile{
		ID:            "user-123",
		Nickname:      "Minsu",
		Height:        178,
		Sportsmanship: domain.DefaultSportsmanship,
	})
	req.NoError(err)

	t.Run("should apply the mutation and persist it", func(t *testing.T) {
		updated, err := repository.Update("user-123", func(p *domain.Profile) {
			p.Nickname = "Minsu2"
			p.Height = 179
		})
		req.NoError(err)
		req.Equal("Minsu2", updated.Nickname)

		stored, err := repository.Get("user-123")
		req.NoError(err)
		req.Equal("Minsu2", stored.Nickname)
		req.Equal(float64(179), stored.Height)
		// Untouched fields survive the round-trip.
		req.Equal(domain.DefaultSportsmanship, stored.Sportsmanship)
	})

	t.Run("should fail on an unknown user", func(t *testing.T) {
		_, err := repository.Update("nobody", func(p *domain.Profile) {
			p.Nickname = "ghost"
		})

		req.ErrorIs(err, serrors.ErrProfileNotFound)
	})
}
