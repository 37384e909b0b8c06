package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

type taskServiceFixture struct {
	service    *TaskService
	taskRepo   *fakeTaskRepo
	statusRepo *fakeStatusRepo
}

func newTaskServiceFixture() *taskServiceFixture {
	taskRepo := newFakeTaskRepo()
	statusRepo := newFakeStatusRepo(
		&entities.Status{ID: 1, Name: "To Do", SortOrder: 1},
		&entities.Status{ID: 2, Name: "In Progress", SortOrder: 2},
		&entities.Status{ID: 3, Name: "Done", IsCompleted: true, SortOrder: 3},
	)
	categoryRepo := newFakeCategoryRepo(&entities.Category{ID: 1, Name: "Infra"})
	memberRepo := newFakeMemberRepo(&entities.Member{ID: 1, Name: "Sam", Avatar: "🦊"})
	priorityRepo := newFakePriorityRepo(
		&entities.Priority{ID: 1, Name: "Low", Level: 2},
		&entities.Priority{ID: 2, Name: "High", Level: 4},
	)

	service := NewTaskService(
		taskRepo, categoryRepo, memberRepo, statusRepo, priorityRepo,
		newFakeCommentRepo(), newFakeAttachmentRepo(), logger.NewNop(),
	)

	return &taskServiceFixture{
		service:    service,
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
	}
}

func (f *taskServiceFixture) seedTask(t *testing.T, task *entities.Task) *entities.Task {
	t.Helper()
	require.NoError(t, f.taskRepo.Create(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	f := newTaskServiceFixture()

	task, err := f.service.CreateTask(context.Background(), ports.CreateTaskRequest{
		Name:       "Deploy staging",
		CategoryID: int64Ptr(1),
		AssignedTo: int64Ptr(1),
		StatusID:   int64Ptr(1),
		PriorityID: int64Ptr(2),
		Tags:       "infra,deploy",
	})

	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, "Deploy staging", task.Name)
	assert.Equal(t, []string{"infra", "deploy"}, task.TagList())
}

func TestCreateTaskRejectsPastDueDate(t *testing.T) {
	f := newTaskServiceFixture()
	past := time.Now().Add(-24 * time.Hour)

	_, err := f.service.CreateTask(context.Background(), ports.CreateTaskRequest{
		Name:    "Too late",
		DueDate: &past,
	})

	assert.ErrorIs(t, err, entities.ErrDueDateInPast)
}

func TestCreateTaskRejectsUnknownReferences(t *testing.T) {
	f := newTaskServiceFixture()

	tests := []struct {
		name     string
		req      ports.CreateTaskRequest
		expected error
	}{
		{"unknown category", ports.CreateTaskRequest{Name: "x", CategoryID: int64Ptr(99)}, entities.ErrCategoryNotFound},
		{"unknown member", ports.CreateTaskRequest{Name: "x", AssignedTo: int64Ptr(99)}, entities.ErrMemberNotFound},
		{"unknown status", ports.CreateTaskRequest{Name: "x", StatusID: int64Ptr(99)}, entities.ErrStatusNotFound},
		{"unknown priority", ports.CreateTaskRequest{Name: "x", PriorityID: int64Ptr(99)}, entities.ErrPriorityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateTask(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{
		Name:        "Original",
		Description: "keep me",
		Tags:        "one,two",
	})

	updated, err := f.service.UpdateTask(context.Background(), seeded.ID, ports.UpdateTaskRequest{
		Name:           strPtr("Renamed"),
		EstimatedHours: floatPtr(3.5),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "one,two", updated.Tags)
	assert.Equal(t, 3.5, updated.EstimatedHours)
}

func TestUpdateTaskNotFound(t *testing.T) {
	f := newTaskServiceFixture()

	_, err := f.service.UpdateTask(context.Background(), 404, ports.UpdateTaskRequest{
		Name: strPtr("nope"),
	})

	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestDeleteTaskNotFound(t *testing.T) {
	f := newTaskServiceFixture()

	err := f.service.DeleteTask(context.Background(), 404)

	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestTransitionToOpenStatus(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "Migrate DB", StatusID: int64Ptr(1)})

	result, err := f.service.Transition(context.Background(), seeded.ID, 2)

	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, `Task "Migrate DB" moved to "In Progress"`, result.Message)

	stored, err := f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, *stored.StatusID)
	assert.Nil(t, stored.CompletedAt)
}

func TestTransitionToCompletedStatusStampsCompletion(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "Migrate DB", StatusID: int64Ptr(2)})

	result, err := f.service.Transition(context.Background(), seeded.ID, 3)

	require.NoError(t, err)
	assert.True(t, result.Completed)

	stored, err := f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.WithinDuration(t, time.Now(), *stored.CompletedAt, 5*time.Second)
}

func TestTransitionAwayKeepsCompletionStamp(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "Migrate DB"})

	_, err := f.service.Transition(context.Background(), seeded.ID, 3)
	require.NoError(t, err)

	stored, err := f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	stamp := *stored.CompletedAt

	// Moving back to an open status leaves the completion timestamp alone.
	_, err = f.service.Transition(context.Background(), seeded.ID, 1)
	require.NoError(t, err)

	stored, err = f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, stamp, *stored.CompletedAt)
	assert.EqualValues(t, 1, *stored.StatusID)
}

func TestTransitionUnknownTask(t *testing.T) {
	f := newTaskServiceFixture()

	_, err := f.service.Transition(context.Background(), 404, 1)

	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestTransitionUnknownStatus(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "Migrate DB"})

	_, err := f.service.Transition(context.Background(), seeded.ID, 404)

	assert.ErrorIs(t, err, entities.ErrStatusNotFound)
}

func TestApplyBulkDelete(t *testing.T) {
	f := newTaskServiceFixture()
	first := f.seedTask(t, &entities.Task{Name: "a"})
	second := f.seedTask(t, &entities.Task{Name: "b"})
	f.seedTask(t, &entities.Task{Name: "c"})

	affected, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:  entities.BulkActionDelete,
		TaskIDs: []int64{first.ID, second.ID, 404},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	_, err = f.taskRepo.GetByID(context.Background(), first.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestApplyBulkArchive(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "a"})

	affected, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:  entities.BulkActionArchive,
		TaskIDs: []int64{seeded.ID},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	stored, err := f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsArchived)
}

func TestApplyBulkChangeStatusDoesNotStampCompletion(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "a", StatusID: int64Ptr(1)})

	// Even moving into the completed status in bulk leaves completed_at
	// untouched; only the single-task transition stamps it.
	affected, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:   entities.BulkActionChangeStatus,
		TaskIDs:  []int64{seeded.ID},
		StatusID: int64Ptr(3),
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	stored, err := f.taskRepo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, *stored.StatusID)
	assert.Nil(t, stored.CompletedAt)
}

func TestApplyBulkChangeStatusRequiresTarget(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "a"})

	_, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:  entities.BulkActionChangeStatus,
		TaskIDs: []int64{seeded.ID},
	})
	assert.ErrorIs(t, err, entities.ErrMissingStatusID)

	_, err = f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:   entities.BulkActionChangeStatus,
		TaskIDs:  []int64{seeded.ID},
		StatusID: int64Ptr(404),
	})
	assert.ErrorIs(t, err, entities.ErrStatusNotFound)
}

func TestApplyBulkChangePriority(t *testing.T) {
	f := newTaskServiceFixture()
	seeded := f.seedTask(t, &entities.Task{Name: "a"})

	_, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:  entities.BulkActionChangePriority,
		TaskIDs: []int64{seeded.ID},
	})
	assert.ErrorIs(t, err, entities.ErrMissingPriorityID)

	affected, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:     entities.BulkActionChangePriority,
		TaskIDs:    []int64{seeded.ID},
		PriorityID: int64Ptr(2),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}

func TestApplyBulkNoOps(t *testing.T) {
	f := newTaskServiceFixture()
	f.seedTask(t, &entities.Task{Name: "a"})

	// Empty selection.
	affected, err := f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action: entities.BulkActionDelete,
	})
	require.NoError(t, err)
	assert.Zero(t, affected)

	// Unrecognized action.
	affected, err = f.service.ApplyBulk(context.Background(), ports.BulkActionRequest{
		Action:  entities.BulkAction("rename"),
		TaskIDs: []int64{1},
	})
	require.NoError(t, err)
	assert.Zero(t, affected)
}
