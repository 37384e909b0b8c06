package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildTaskWhereDefault(t *testing.T) {
	where, args := buildTaskWhere(ports.TaskFilter{})

	assert.Equal(t, " WHERE t.is_archived = FALSE", where)
	assert.Empty(t, args)
}

func TestBuildTaskWhereSearchFields(t *testing.T) {
	tests := []struct {
		searchIn string
		column   string
	}{
		{entities.SearchInName, "t.name"},
		{entities.SearchInDescription, "t.description"},
		{entities.SearchInTags, "t.tags"},
		{entities.SearchInAssignedTo, "m.name"},
		{"", "t.name"},
	}

	for _, tt := range tests {
		t.Run("search in "+tt.column, func(t *testing.T) {
			where, args := buildTaskWhere(ports.TaskFilter{
				SearchQuery: "deploy",
				SearchIn:    tt.searchIn,
			})

			assert.Contains(t, where, tt.column+" ILIKE $1")
			require.Len(t, args, 1)
			assert.Equal(t, "%deploy%", args[0])
		})
	}
}

func TestBuildTaskWhereEmptyQuerySkipsSearch(t *testing.T) {
	where, args := buildTaskWhere(ports.TaskFilter{SearchIn: entities.SearchInTags})

	assert.NotContains(t, where, "ILIKE")
	assert.Empty(t, args)
}

func TestBuildTaskWhereCombinedFilters(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	where, args := buildTaskWhere(ports.TaskFilter{
		SearchQuery: "deploy",
		SearchIn:    entities.SearchInName,
		CategoryID:  int64Ptr(3),
		StatusID:    int64Ptr(2),
		PriorityID:  int64Ptr(5),
		AssignedTo:  int64Ptr(7),
		DueDateFrom: &from,
		DueDateTo:   &to,
		ShowOverdue: true,
		Now:         now,
	})

	assert.Contains(t, where, "t.is_archived = FALSE")
	assert.Contains(t, where, "t.name ILIKE $1")
	assert.Contains(t, where, "t.category_id = $2")
	assert.Contains(t, where, "t.status_id = $3")
	assert.Contains(t, where, "t.priority_id = $4")
	assert.Contains(t, where, "t.assigned_to = $5")
	assert.Contains(t, where, "t.due_date >= $6")
	assert.Contains(t, where, "t.due_date <= $7")
	assert.Contains(t, where, "t.due_date < $8")

	require.Len(t, args, 8)
	assert.Equal(t, "%deploy%", args[0])
	assert.Equal(t, int64(3), args[1])
	assert.Equal(t, int64(7), args[4])
	assert.Equal(t, from, args[5])
	assert.Equal(t, to, args[6])
	assert.Equal(t, now, args[7])
}

// The archived view lists every task: enabling it discards every other
// condition, including the base non-archived exclusion.
func TestBuildTaskWhereShowArchivedDropsEverything(t *testing.T) {
	where, args := buildTaskWhere(ports.TaskFilter{
		SearchQuery:  "deploy",
		CategoryID:   int64Ptr(3),
		ShowOverdue:  true,
		ShowArchived: true,
		Now:          time.Now(),
	})

	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestBuildTaskWhereOverdueIgnoresCompletion(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	where, _ := buildTaskWhere(ports.TaskFilter{ShowOverdue: true, Now: now})

	// Overdue filtering here is purely a date cutoff; completed tasks with a
	// past due date still match.
	assert.Contains(t, where, "t.due_date < $1")
	assert.NotContains(t, where, "is_completed")
}
