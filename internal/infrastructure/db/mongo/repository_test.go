package mongo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// testDatabase connects to the server named by MONGO_TEST_URI and hands out a
// throwaway database. Tests are skipped when the variable is unset.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{
		URI:      uri,
		Database: "todos_test_" + primitive.NewObjectID().Hex(),
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestTodoRepository_OwnerConditionalWrites(t *testing.T) {
	db := testDatabase(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	todo, err := repo.Create(ctx, &domain.Todo{Name: "Buy milk", UID: "alice", Date: time.Now()})
	require.NoError(t, err)

	_, err = repo.UpdateOwned(ctx, todo.ID, "bob", domain.TodoChanges{Name: "hijacked"})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	_, err = repo.ToggleOwned(ctx, todo.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	_, err = repo.DeleteOwned(ctx, todo.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	stored, err := repo.FindByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Name)
	assert.False(t, stored.IsComplete)

	done := true
	updated, err := repo.UpdateOwned(ctx, todo.ID, "alice", domain.TodoChanges{Name: "Buy oat milk", IsComplete: &done})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Name)
	assert.True(t, updated.IsComplete)

	deleted, err := repo.DeleteOwned(ctx, todo.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", deleted.Name)

	_, err = repo.FindByID(ctx, todo.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestTodoRepository_ConcurrentTogglesAllApply(t *testing.T) {
	db := testDatabase(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	todo, err := repo.Create(ctx, &domain.Todo{Name: "Flip me", UID: "alice", Date: time.Now()})
	require.NoError(t, err)

	const toggles = 9
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ToggleOwned(ctx, todo.ID, "alice")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsComplete, "an odd number of toggles must leave the todo complete")
}

func TestTodoRepository_ListByOwnerNewestFirst(t *testing.T) {
	db := testDatabase(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "new", "middle"} {
		offsets := []int{0, 48, 24}
		_, err := repo.Create(ctx, &domain.Todo{Name: name, UID: "alice", Date: base.Add(time.Duration(offsets[i]) * time.Hour)})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Todo{Name: "bob's", UID: "bob", Date: base})
	require.NoError(t, err)

	todos, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	names := make([]string, len(todos))
	for i, td := range todos {
		names[i] = td.Name
	}
	assert.Equal(t, []string{"new", "middle", "old"}, names)
}

func TestUserRepository_EmailIsUniqueIgnoringCase(t *testing.T) {
	db := testDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	_, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Name: "Alice", Email: "ALICE@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	found, err := repo.FindByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
}
