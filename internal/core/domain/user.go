package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNotLoggedIn        = errors.New("no user is logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameEmpty      = errors.New("username cannot be empty")
	ErrDisplayNameEmpty   = errors.New("display name cannot be empty")
)

const DefaultThemeKey = "default"

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Theme    string `json:"theme"`
}

func (u User) GetID() int { return u.ID }

func (u User) Clone() User { return u }

// NewUser fabricates a user with the default theme. It never fails; input
// checks belong to the caller.
func NewUser(id int, username, name string) User {
	return User{
		ID:       id,
		Username: strings.TrimSpace(username),
		Name:     strings.TrimSpace(name),
		Theme:    DefaultThemeKey,
	}
}

// Credential is one entry of the fixed mock allow-list. Only the bcrypt
// hash of the fixed password is kept in memory.
type Credential struct {
	User         User
	PasswordHash []byte
}

func NewCredential(user User, plainPassword string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.MinCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{User: user, PasswordHash: hash}, nil
}

func (c Credential) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(plainPassword))
}
