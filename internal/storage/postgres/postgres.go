package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/IlyasAtabaev731/transfer-api/internal/lib/logger/sl"
	_ "github.com/lib/pq"
)

// Storage reads the initial user set from Postgres. Balances changed by
// transfers are never written back.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(dbUrl string, logger *slog.Logger) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("%s: database connection error: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: failed to connect database: %w", op, err)
	}

	return &Storage{db: db, logger: logger}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

// LoadUsers returns every row of the users table ordered by id.
func (s *Storage) LoadUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.LoadUsers"

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, balance FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			s.logger.Error("Failed to close users rows", sl.Err(err))
		}
	}(rows)

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Balance); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("Loaded users from database", slog.Int("count", len(users)))

	return users, nil
}
