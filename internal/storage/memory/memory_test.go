package memory

import (
	"testing"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New([]models.User{
		{ID: 2, Name: "Bob", Balance: 500},
		{ID: 1, Name: "Alice", Balance: 1000},
	})
	require.NoError(t, err)

	return s
}

func TestFindUser(t *testing.T) {
	s := newTestStorage(t)

	user, ok := s.FindUser(1)
	require.True(t, ok)
	assert.Equal(t, models.User{ID: 1, Name: "Alice", Balance: 1000}, user)

	_, ok = s.FindUser(999)
	assert.False(t, ok)
}

func TestFindUserReturnsCopy(t *testing.T) {
	s := newTestStorage(t)

	user, _ := s.FindUser(1)
	user.Balance = 0

	balance, _ := s.GetBalance(1)
	assert.Equal(t, 1000.0, balance)
}

func TestGetBalance(t *testing.T) {
	s := newTestStorage(t)

	balance, ok := s.GetBalance(2)
	require.True(t, ok)
	assert.Equal(t, 500.0, balance)

	balance, ok = s.GetBalance(999)
	assert.False(t, ok)
	assert.Zero(t, balance)
}

func TestApplyTransfer(t *testing.T) {
	s := newTestStorage(t)

	s.ApplyTransfer(1, 2, 300)

	sender, _ := s.GetBalance(1)
	receiver, _ := s.GetBalance(2)
	assert.Equal(t, 700.0, sender)
	assert.Equal(t, 800.0, receiver)
}

func TestNewDoesNotAliasSeed(t *testing.T) {
	seed := []models.User{{ID: 1, Name: "Alice", Balance: 1000}}
	s, err := New(seed)
	require.NoError(t, err)

	seed[0].Balance = 1

	balance, _ := s.GetBalance(1)
	assert.Equal(t, 1000.0, balance)
}

func TestNewDuplicateUser(t *testing.T) {
	_, err := New([]models.User{
		{ID: 1, Name: "Alice", Balance: 1000},
		{ID: 1, Name: "Alice again", Balance: 1},
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestUsersSortedByID(t *testing.T) {
	s := newTestStorage(t)

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
}
