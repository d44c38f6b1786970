package repository

import (
	"context"
	"sync"
	"testing"

	"catalog-admin/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Seed(t *testing.T) {
	repo := NewUserRepository(SeedUsers())

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Equal(t, "John Doe", users[0].Name)
	assert.Equal(t, "Charlie Wilson", users[4].Name)
}

func TestUserRepository_ListReturnsCopy(t *testing.T) {
	repo := NewUserRepository(SeedUsers())
	ctx := context.Background()

	users, _ := repo.List(ctx)
	users[0].Name = "Changed"

	again, _ := repo.List(ctx)
	assert.Equal(t, "John Doe", again[0].Name)
}

func TestUserRepository_CreateUpdateDelete(t *testing.T) {
	repo := NewUserRepository(SeedUsers())
	ctx := context.Background()

	user := &domain.User{Name: "Dana White", Email: "dana@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, 6, user.ID)

	user.Status = domain.StatusInactive
	require.NoError(t, repo.Update(ctx, user))

	require.NoError(t, repo.Delete(ctx, 3))
	assert.ErrorIs(t, repo.Delete(ctx, 3), ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 42}), ErrUserNotFound)

	users, _ := repo.List(ctx)
	require.Len(t, users, 5)
	assert.Equal(t, domain.StatusInactive, users[4].Status)

	next := &domain.User{Name: "Eve"}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, 7, next.ID, "ids never reuse a deleted slot below the maximum")
}

func TestUserRepository_CreateInEmptyStartsAtOne(t *testing.T) {
	repo := NewUserRepository(nil)

	user := &domain.User{Name: "First"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, 1, user.ID)
}

func TestUserRepository_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo := NewUserRepository(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, &domain.User{Name: "u"})
		}()
	}
	wg.Wait()

	users, _ := repo.List(ctx)
	seen := map[int]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
	assert.Len(t, users, 50)
}

func TestProperty_CreateAssignsMaxIDPlusOne(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a created user gets the highest id plus one", prop.ForAll(
		func(ids []int) bool {
			seed := make([]domain.User, 0, len(ids))
			highest := 0
			for _, id := range ids {
				seed = append(seed, domain.User{ID: id})
				if id > highest {
					highest = id
				}
			}

			repo := NewUserRepository(seed)
			user := &domain.User{Name: "new"}
			if err := repo.Create(context.Background(), user); err != nil {
				return false
			}
			return user.ID == highest+1
		},
		gen.SliceOf(gen.IntRange(1, 1000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
