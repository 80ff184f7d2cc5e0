package repo

import "github.com/Skotchmaster/storefront/internal/models"

func (s *Session) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.Select(&users, `SELECT id, name, email FROM users ORDER BY id`); err != nil {
		return nil, err
	}
	return users, nil
}

// InsertUser returns ErrConflict when the email is already taken.
func (s *Session) InsertUser(name, email, password string) (models.User, error) {
	var u models.User
	_, err := s.Get(&u,
		`INSERT INTO users (name, email, password) VALUES (?, ?, ?) RETURNING id, name, email`,
		name, email, password,
	)
	return u, err
}

// UserByEmail also loads the stored password.
func (s *Session) UserByEmail(email string) (models.User, bool, error) {
	var u models.User
	found, err := s.Get(&u, `SELECT id, name, email, password FROM users WHERE email = ?`, email)
	return u, found, err
}

func (s *Session) UserByID(id int64) (models.User, bool, error) {
	var u models.User
	found, err := s.Get(&u, `SELECT id, name, email FROM users WHERE id = ?`, id)
	return u, found, err
}
