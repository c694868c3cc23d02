package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Binaergewitter/datefinder/internal/model"
)

var ErrUsernameTaken = errors.New("username already taken")

func (p *SQLProvider) CreateUser(ctx context.Context, user model.User) (int64, error) {
	res, err := p.db.ExecContext(ctx,
		"INSERT INTO users (username, display_name, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.DisplayName, user.PasswordHash, time.Now().UTC())
	if err != nil {
		var exists bool
		if checkErr := p.db.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", user.Username); checkErr == nil && exists {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new user id: %w", err)
	}
	return id, nil
}

func (p *SQLProvider) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := p.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (p *SQLProvider) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := p.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (p *SQLProvider) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := p.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
