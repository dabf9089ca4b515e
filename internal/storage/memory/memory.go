package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
)

var ErrDuplicateUser = errors.New("duplicate user id")

// Storage keeps user balances in process memory. The user set is fixed at
// construction time.
type Storage struct {
	mu    sync.RWMutex
	users map[int64]*models.User
}

func New(seed []models.User) (*Storage, error) {
	const op = "storage.memory.New"

	users := make(map[int64]*models.User, len(seed))
	for _, u := range seed {
		if _, ok := users[u.ID]; ok {
			return nil, fmt.Errorf("%s: %w: %d", op, ErrDuplicateUser, u.ID)
		}
		user := u
		users[u.ID] = &user
	}

	return &Storage{users: users}, nil
}

func (s *Storage) FindUser(id int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

func (s *Storage) GetBalance(id int64) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return 0, false
	}
	return user.Balance, true
}

// ApplyTransfer moves amount from sender to receiver. Callers must have
// checked that both users exist and that the amount is covered.
func (s *Storage) ApplyTransfer(senderID, receiverID int64, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[senderID].Balance -= amount
	s.users[receiverID].Balance += amount
}

// Users returns a snapshot of all users ordered by id.
func (s *Storage) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		res = append(res, *u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}
