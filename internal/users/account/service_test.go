// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package account_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/users/account"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Test Doubles

type memoryRepository struct {
	mu         sync.Mutex
	users      map[string]*auth.User
	likes      map[string]map[string]bool // workID -> set of likers
	likeCounts map[string]int             // workID -> stored counter
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:      map[string]*auth.User{},
		likes:      map[string]map[string]bool{},
		likeCounts: map[string]int{},
	}
}

func (repository *memoryRepository) seed(id string, role sec.UserRole, createdAt time.Time) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.users[id] = &auth.User{
		ID:        id,
		FirstName: "Member",
		LastName:  id,
		Email:     id + "@example.com",
		Role:      role,
		Status:    sec.StatusActive,
		CreatedAt: createdAt,
	}
}

func (repository *memoryRepository) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	all := make([]*auth.User, 0, len(repository.users))
	for _, user := range repository.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repository *memoryRepository) UpdateRoleStatus(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Role = user.Role
	stored.Status = user.Status
	return nil
}

func (repository *memoryRepository) seedLike(workID, userID string) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.likes[workID] == nil {
		repository.likes[workID] = map[string]bool{}
	}
	repository.likes[workID][userID] = true
	repository.likeCounts[workID]++
}

// Delete mirrors the Postgres store: the counters on works the user has
// liked are settled before the cascade removes the like rows.
func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.users[id]; !ok {
		return apperr.NotFound("User")
	}
	for workID, likers := range repository.likes {
		if likers[id] {
			delete(likers, id)
			if repository.likeCounts[workID] > 0 {
				repository.likeCounts[workID]--
			}
		}
	}
	delete(repository.users, id)
	return nil
}

func newService(repository *memoryRepository) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repository, logger)
}

func roleOf(r sec.UserRole) *sec.UserRole             { return &r }
func statusOf(s sec.AccountStatus) *sec.AccountStatus { return &s }

// # Tests

func TestService_ListUsers(t *testing.T) {
	repository := newMemoryRepository()
	base := time.Unix(1700000000, 0)
	repository.seed("admin-1", sec.RoleAdmin, base)
	repository.seed("creator-1", sec.RoleCreator, base.Add(time.Hour))
	repository.seed("creator-2", sec.RoleCreator, base.Add(2*time.Hour))
	service := newService(repository)

	users, total, err := service.ListUsers(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 2)
	assert.Equal(t, "creator-2", users[0].ID, "newest registration first")

	users, total, err = service.ListUsers(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 1)
	assert.Equal(t, "admin-1", users[0].ID)
}

func TestService_UpdateUser(t *testing.T) {
	repository := newMemoryRepository()
	repository.seed("admin-1", sec.RoleAdmin, time.Now())
	repository.seed("creator-1", sec.RoleCreator, time.Now())
	service := newService(repository)
	ctx := context.Background()

	// Promote role only; standing stays untouched.
	updated, err := service.UpdateUser(ctx, "admin-1", "creator-1", account.UpdateInput{
		Role: roleOf(sec.RoleEditor),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEditor, updated.Role)
	assert.Equal(t, sec.StatusActive, updated.Status)

	// Suspend independently of role.
	updated, err = service.UpdateUser(ctx, "admin-1", "creator-1", account.UpdateInput{
		Status: statusOf(sec.StatusSuspended),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEditor, updated.Role)
	assert.Equal(t, sec.StatusSuspended, updated.Status)

	_, err = service.UpdateUser(ctx, "admin-1", "ghost", account.UpdateInput{Role: roleOf(sec.RoleEditor)})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestService_SelfModificationBlocked(t *testing.T) {
	repository := newMemoryRepository()
	repository.seed("admin-1", sec.RoleAdmin, time.Now())
	service := newService(repository)
	ctx := context.Background()

	_, err := service.UpdateUser(ctx, "admin-1", "admin-1", account.UpdateInput{
		Role: roleOf(sec.RoleCreator),
	})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	err = service.DeleteUser(ctx, "admin-1", "admin-1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// The account must be untouched after both refusals.
	user, findErr := repository.FindByID(ctx, "admin-1")
	require.NoError(t, findErr)
	assert.Equal(t, sec.RoleAdmin, user.Role)
}

func TestService_DeleteUser(t *testing.T) {
	repository := newMemoryRepository()
	repository.seed("admin-1", sec.RoleAdmin, time.Now())
	repository.seed("creator-1", sec.RoleCreator, time.Now())
	service := newService(repository)
	ctx := context.Background()

	require.NoError(t, service.DeleteUser(ctx, "admin-1", "creator-1"))

	_, err := repository.FindByID(ctx, "creator-1")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	err = service.DeleteUser(ctx, "admin-1", "creator-1")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestService_DeleteUserSettlesLikeCounts(t *testing.T) {
	repository := newMemoryRepository()
	repository.seed("admin-1", sec.RoleAdmin, time.Now())
	repository.seed("creator-1", sec.RoleCreator, time.Now())
	repository.seed("creator-2", sec.RoleCreator, time.Now())
	// creator-1 and creator-2 both like a surviving author's work.
	repository.seedLike("work-1", "creator-1")
	repository.seedLike("work-1", "creator-2")
	service := newService(repository)
	ctx := context.Background()

	require.NoError(t, service.DeleteUser(ctx, "admin-1", "creator-1"))

	// The counter must equal the cardinality of the remaining like set.
	assert.Equal(t, 1, repository.likeCounts["work-1"])
	assert.Len(t, repository.likes["work-1"], 1)
	assert.True(t, repository.likes["work-1"]["creator-2"])
}
