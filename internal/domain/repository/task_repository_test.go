package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/common"
	"taskboard/internal/domain/model"
	"taskboard/internal/domain/repository"
	"taskboard/internal/testutil"
)

var baseTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTask(code, name, description string, offset time.Duration) *model.Task {
	ts := baseTime.Add(offset)
	return &model.Task{Code: code, Name: name, Description: description, CreatedAt: ts, UpdatedAt: ts}
}

func seed(t *testing.T, repo repository.TaskRepository, tasks ...*model.Task) {
	t.Helper()
	for _, task := range tasks {
		require.NoError(t, repo.Create(context.Background(), task))
	}
}

func codes(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Code)
	}
	return out
}

func TestTaskRepositoryCreateAndFind(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	seed(t, repo, newTask("ABC123", "Buy milk", "", 0))

	got, err := repo.FindByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", got.Code)
	assert.Equal(t, "Buy milk", got.Name)
	assert.Equal(t, "", got.Description)
	assert.True(t, baseTime.Equal(got.CreatedAt))
	assert.True(t, baseTime.Equal(got.UpdatedAt))
}

func TestTaskRepositoryFindMissing(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))

	_, err := repo.FindByCode(context.Background(), "NOPE00")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTaskRepositoryDuplicateCodeConflicts(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	seed(t, repo, newTask("ABC123", "Original", "keep me", 0))

	err := repo.Create(ctx, newTask("ABC123", "Impostor", "", time.Minute))
	require.ErrorIs(t, err, common.ErrConflict)

	got, err := repo.FindByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
	assert.Equal(t, "keep me", got.Description)
}

func TestTaskRepositoryListNewestFirst(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))

	seed(t, repo,
		newTask("AAA001", "first", "", 0),
		newTask("AAA003", "third", "", 2*time.Minute),
		newTask("AAA002", "second", "", time.Minute),
	)

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA003", "AAA002", "AAA001"}, codes(tasks))
}

func TestTaskRepositoryListEmpty(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepositorySearch(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	seed(t, repo,
		newTask("TST001", "Write TESTS", "", 0),
		newTask("TST002", "Groceries", "remember the Test strips", time.Minute),
		newTask("TST003", "Laundry", "", 2*time.Minute),
		newTask("TST004", "100% done", "under_score", 3*time.Minute),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "name or description, any case", query: "test", want: []string{"TST002", "TST001"}},
		{name: "empty query returns all", query: "", want: []string{"TST004", "TST003", "TST002", "TST001"}},
		{name: "no match", query: "nothing", want: []string{}},
		{name: "percent is literal", query: "%", want: []string{"TST004"}},
		{name: "underscore is literal", query: "_", want: []string{"TST004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(tasks))
		})
	}
}

func TestTaskRepositoryUpdate(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	seed(t, repo, newTask("UPD001", "Before", "old", 0))

	later := baseTime.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, &model.Task{
		Code:        "UPD001",
		Name:        "After",
		Description: "new",
		CreatedAt:   later,
		UpdatedAt:   later,
	}))

	got, err := repo.FindByCode(ctx, "UPD001")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "new", got.Description)
	assert.True(t, baseTime.Equal(got.CreatedAt), "created_at must not change")
	assert.True(t, later.Equal(got.UpdatedAt))
}

func TestTaskRepositoryUpdateMissing(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), newTask("NOPE00", "x", "", 0))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTaskRepositoryDelete(t *testing.T) {
	repo := repository.NewTaskRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	seed(t, repo, newTask("DEL001", "Gone soon", "", 0))

	require.NoError(t, repo.Delete(ctx, "DEL001"))
	_, err := repo.FindByCode(ctx, "DEL001")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "DEL001"), common.ErrNotFound)
}
