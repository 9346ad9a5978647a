// Package service implements the orchestration layer: user registration,
// group membership, expense commits and settlements. It owns the in-memory
// state and drives the calculator and ledger.
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
)

// ErrUserExists is returned when registering a user id that is already taken.
var ErrUserExists = errors.New("user already exists")

// UserRegistry is the user directory: registration, lookup and soft
// deactivation. Users are never deleted.
type UserRegistry struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewUserRegistry creates an empty user registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: make(map[string]*models.User)}
}

// AddUser registers a new user. A blank id gets a generated UUID. Returns
// ErrUserExists if the id is already taken.
func (r *UserRegistry) AddUser(id, name, email, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	if _, ok := r.users[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, id)
	}

	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().Unix(),
		Active:    true,
	}
	r.users[id] = user
	return copyUser(user), nil
}

// User returns a copy of the user, or a NotFound error.
func (r *UserRegistry) User(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errs.E(errs.NotFound, id, "user not found")
	}
	return copyUser(user), nil
}

// Deactivate soft-deactivates a user. Historical expenses and ledger edges
// keep resolving against the id.
func (r *UserRegistry) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return errs.E(errs.NotFound, id, "user not found")
	}
	user.Active = false
	return nil
}

// contains reports whether every id is registered, returning the first
// missing id otherwise.
func (r *UserRegistry) contains(ids ...string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range ids {
		if _, ok := r.users[id]; !ok {
			return id, false
		}
	}
	return "", true
}

// joinGroup and leaveGroup maintain the user side of the group↔user
// membership symmetry. Called by the group service only.

func (r *UserRegistry) joinGroup(userID, groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.JoinGroup(groupID)
	}
}

func (r *UserRegistry) leaveGroup(userID, groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.LeaveGroup(groupID)
	}
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.GroupIDs = append([]string(nil), u.GroupIDs...)
	return &out
}
