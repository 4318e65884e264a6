package repos

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
)

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db}
}

func (r UserRepo) InsertUser(user data.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (id, name, display_name, email, avatar)
		VALUES (:id, :name, :display_name, :email, :avatar)
		RETURNING id`

	rows, err := r.db.NamedQuery(query, user)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}
	defer rows.Close()

	var id uuid.UUID
	if rows.Next() {
		err = rows.Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("scan returned id: %w", err)
		}
	}

	return id, nil
}

func (r UserRepo) ListUsers() ([]data.User, error) {
	var users []data.User
	query := `
		SELECT id, name, display_name, email, avatar, created_at, updated_at
		FROM users
		ORDER BY created_at ASC`

	err := r.db.Select(&users, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
