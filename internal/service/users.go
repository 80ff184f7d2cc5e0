package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	MsgUserFieldsRequired  = "Please provide name, email and password."
	MsgLoginFieldsRequired = "Please provide email and password."
)

type UserService struct {
	Gateway   *repo.Gateway
	Passwords hash.Scheme
	Events    mykafka.Publisher
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		users, err = tx.ListUsers()
		return err
	})
	return users, err
}

// Register relies on the unique email index, so two concurrent registrations
// of one address end with exactly one user and one ErrConflict.
func (s *UserService) Register(ctx context.Context, req transport.CreateUserRequest) (models.User, error) {
	if err := validate.Struct(req); err != nil {
		return models.User{}, invalid(MsgUserFieldsRequired)
	}

	stored, err := s.Passwords.Hash(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		user, err = tx.InsertUser(req.Name, req.Email, stored)
		return err
	})
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, fmt.Errorf("email %s: %w", req.Email, ErrConflict)
	}
	if err != nil {
		return models.User{}, err
	}

	publish(ctx, s.Events, mykafka.TopicUsers, strconv.FormatInt(user.ID, 10), "user_registered", user)
	return user, nil
}

// Authenticate returns ErrUnauthorized for an unknown email and for a wrong
// password alike.
func (s *UserService) Authenticate(ctx context.Context, req transport.LoginRequest) (models.User, error) {
	if err := validate.Struct(req); err != nil {
		return models.User{}, invalid(MsgLoginFieldsRequired)
	}

	var (
		user  models.User
		found bool
	)
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		user, found, err = tx.UserByEmail(req.Email)
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	if !found || !s.Passwords.Compare(user.Password, req.Password) {
		return models.User{}, fmt.Errorf("login %s: %w", req.Email, ErrUnauthorized)
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	var (
		user  models.User
		found bool
	)
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		user, found, err = tx.UserByID(id)
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}
