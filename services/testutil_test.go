package services

import (
	"context"
	"testing"
	"time"

	"pairdiary/db"
	"pairdiary/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	db.ORM = database
	Sessions = NewDBSessionStore(time.Hour)
}

func registerTestUser(t *testing.T) *models.User {
	t.Helper()
	user, err := NewAccountService().Register(context.Background(), gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))
	require.NoError(t, err)
	return user
}

// twoPersonPair wires users a and b into a joined pair via the invite flow.
func twoPersonPair(t *testing.T, a, b *models.User) int64 {
	t.Helper()
	pairs := NewPairService()
	pair, err := pairs.CreatePair(context.Background(), a.ID)
	require.NoError(t, err)
	pairID, err := pairs.JoinPair(context.Background(), b.ID, pair.InviteCode)
	require.NoError(t, err)
	return pairID
}

func soloPairOf(t *testing.T, user *models.User) *models.Pair {
	t.Helper()
	var pair models.Pair
	err := db.ORM.Where("user1_id = ? AND is_solo = ?", user.ID, true).First(&pair).Error
	require.NoError(t, err)
	return &pair
}
