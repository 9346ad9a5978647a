package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
)

// GroupService is the group registry: creation, membership and lookup.
//
// It maintains the symmetry invariant between Group.MemberIDs and each
// member's User.GroupIDs on every mutation.
type GroupService struct {
	mu     sync.RWMutex
	users  *UserRegistry
	groups map[string]*models.Group
}

// NewGroupService creates a group registry backed by the given user directory.
func NewGroupService(users *UserRegistry) *GroupService {
	return &GroupService{
		users:  users,
		groups: make(map[string]*models.Group),
	}
}

// CreateGroup creates a new group. A non-empty createdBy must be a
// registered user and becomes the first member.
func (s *GroupService) CreateGroup(name, description, createdBy string) (*models.Group, error) {
	if createdBy != "" {
		if missing, ok := s.users.contains(createdBy); !ok {
			return nil, errs.E(errs.NotFound, missing, "user not found")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group := &models.Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().Unix(),
		Active:      true,
	}
	if createdBy != "" {
		group.MemberIDs = append(group.MemberIDs, createdBy)
		s.users.joinGroup(createdBy, group.ID)
	}
	s.groups[group.ID] = group

	slog.Info("group created", "group_id", group.ID, "name", name)
	return copyGroup(group), nil
}

// AddMembers adds users to a group. Every id must be registered; ids that
// are already members are skipped.
func (s *GroupService) AddMembers(groupID string, userIDs ...string) error {
	if missing, ok := s.users.contains(userIDs...); !ok {
		return errs.E(errs.NotFound, missing, "user not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return errs.E(errs.NotFound, groupID, "group not found")
	}

	for _, id := range userIDs {
		if group.HasMember(id) {
			continue
		}
		group.MemberIDs = append(group.MemberIDs, id)
		s.users.joinGroup(id, groupID)
	}
	return nil
}

// RemoveMember removes a user from a group and discards the user's
// back-reference. Historical group-scoped ledger edges are untouched.
func (s *GroupService) RemoveMember(groupID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return errs.E(errs.NotFound, groupID, "group not found")
	}

	for i, id := range group.MemberIDs {
		if id == userID {
			group.MemberIDs = append(group.MemberIDs[:i], group.MemberIDs[i+1:]...)
			s.users.leaveGroup(userID, groupID)
			return nil
		}
	}
	return errs.E(errs.NotFound, userID, "user is not a member of group %s", groupID)
}

// Group returns a copy of the group, or a NotFound error.
func (s *GroupService) Group(groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, errs.E(errs.NotFound, groupID, "group not found")
	}
	return copyGroup(group), nil
}

// GroupsFor returns copies of all groups the user belongs to.
func (s *GroupService) GroupsFor(userID string) []*models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Group
	for _, group := range s.groups {
		if group.HasMember(userID) {
			out = append(out, copyGroup(group))
		}
	}
	return out
}

// Deactivate soft-deactivates a group. Its expenses and ledger edges remain.
func (s *GroupService) Deactivate(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return errs.E(errs.NotFound, groupID, "group not found")
	}
	group.Active = false
	return nil
}

// exists reports whether the group id is known.
func (s *GroupService) exists(groupID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[groupID]
	return ok
}

// appendExpense records a committed expense id against the group. Called by
// the expense service after a successful commit.
func (s *GroupService) appendExpense(groupID, expenseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group, ok := s.groups[groupID]; ok {
		group.ExpenseIDs = append(group.ExpenseIDs, expenseID)
	}
}

func copyGroup(g *models.Group) *models.Group {
	out := *g
	out.MemberIDs = append([]string(nil), g.MemberIDs...)
	out.ExpenseIDs = append([]string(nil), g.ExpenseIDs...)
	return &out
}
