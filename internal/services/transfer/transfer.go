package transfer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
)

const SuccessMessage = "Transferência realizada"

type Ledger interface {
	FindUser(id int64) (models.User, bool)
	GetBalance(id int64) (float64, bool)
	ApplyTransfer(senderID, receiverID int64, amount float64)
	Users() []models.User
}

type Service struct {
	log    *slog.Logger
	ledger Ledger

	// mu is held from the first check to the mutation.
	mu sync.Mutex
}

func New(log *slog.Logger, ledger Ledger) *Service {
	return &Service{
		log:    log,
		ledger: ledger,
	}
}

// Transfer moves amount from sender to receiver. The checks run in order
// (users exist, amount is positive, sender has enough funds) and the first
// failing one is returned as an *Error. Nothing is mutated on failure.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID int64, amount float64) (models.TransferResult, error) {
	const op = "services.transfer.Transfer"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("sender_id", senderID),
		slog.Int64("receiver_id", receiverID),
		slog.Float64("amount", amount),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(senderID, receiverID, amount); err != nil {
		log.WarnContext(ctx, "transfer rejected", slog.String("reason", KindOf(err).String()))
		return models.TransferResult{}, err
	}

	s.ledger.ApplyTransfer(senderID, receiverID, amount)

	newBalance, _ := s.ledger.GetBalance(senderID)

	log.InfoContext(ctx, "transfer completed", slog.Float64("new_sender_balance", newBalance))

	return models.TransferResult{
		Success:          true,
		NewSenderBalance: newBalance,
		Message:          SuccessMessage,
	}, nil
}

func (s *Service) validate(senderID, receiverID int64, amount float64) error {
	_, senderOK := s.ledger.FindUser(senderID)
	_, receiverOK := s.ledger.FindUser(receiverID)
	if !senderOK || !receiverOK {
		return ErrUserNotFound
	}

	// !(amount > 0) also rejects NaN.
	if !(amount > 0) {
		return ErrInvalidAmount
	}

	balance, _ := s.ledger.GetBalance(senderID)
	if balance < amount {
		return ErrInsufficientFunds
	}

	return nil
}

// Balance returns the current balance of a user or ErrUserNotFound.
func (s *Service) Balance(_ context.Context, id int64) (float64, error) {
	balance, ok := s.ledger.GetBalance(id)
	if !ok {
		return 0, ErrUserNotFound
	}
	return balance, nil
}

func (s *Service) User(_ context.Context, id int64) (models.User, error) {
	user, ok := s.ledger.FindUser(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) Users(_ context.Context) []models.User {
	return s.ledger.Users()
}
