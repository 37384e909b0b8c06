package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

func newLookupService() *LookupService {
	return NewLookupService(
		newFakeCategoryRepo(),
		newFakeMemberRepo(),
		newFakePriorityRepo(),
		newFakeStatusRepo(),
		logger.NewNop(),
	)
}

func TestCreateCategoryDefaultsColor(t *testing.T) {
	s := newLookupService()

	category, err := s.CreateCategory(context.Background(), ports.CategoryRequest{Name: "Infra"})
	require.NoError(t, err)
	assert.Equal(t, defaultCategoryColor, category.Color)

	category, err = s.CreateCategory(context.Background(), ports.CategoryRequest{Name: "Web", Color: "#112233"})
	require.NoError(t, err)
	assert.Equal(t, "#112233", category.Color)
}

func TestCreateMemberDefaultsAvatar(t *testing.T) {
	s := newLookupService()

	member, err := s.CreateMember(context.Background(), ports.MemberRequest{Name: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, defaultAvatar, member.Avatar)

	member, err = s.CreateMember(context.Background(), ports.MemberRequest{Name: "Alex", Avatar: "🦊"})
	require.NoError(t, err)
	assert.Equal(t, "🦊", member.Avatar)
}

func TestCreatePriorityValidatesLevel(t *testing.T) {
	s := newLookupService()

	_, err := s.CreatePriority(context.Background(), ports.PriorityRequest{Name: "Bogus", Level: 0})
	assert.ErrorIs(t, err, entities.ErrPriorityLevelRange)

	_, err = s.CreatePriority(context.Background(), ports.PriorityRequest{Name: "Bogus", Level: 6})
	assert.ErrorIs(t, err, entities.ErrPriorityLevelRange)

	priority, err := s.CreatePriority(context.Background(), ports.PriorityRequest{Name: "High", Level: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, priority.Level)
	assert.Equal(t, defaultPriorityColor, priority.Color)
}

func TestUpdateLookupNotFound(t *testing.T) {
	s := newLookupService()
	ctx := context.Background()

	_, err := s.UpdateCategory(ctx, 404, ports.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, entities.ErrCategoryNotFound)

	_, err = s.UpdateMember(ctx, 404, ports.MemberRequest{Name: "x"})
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)

	_, err = s.UpdatePriority(ctx, 404, ports.PriorityRequest{Name: "x", Level: 3})
	assert.ErrorIs(t, err, entities.ErrPriorityNotFound)

	_, err = s.UpdateStatus(ctx, 404, ports.StatusRequest{Name: "x"})
	assert.ErrorIs(t, err, entities.ErrStatusNotFound)
}

func TestDeleteLookupNotFound(t *testing.T) {
	s := newLookupService()
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteCategory(ctx, 404), entities.ErrCategoryNotFound)
	assert.ErrorIs(t, s.DeleteMember(ctx, 404), entities.ErrMemberNotFound)
	assert.ErrorIs(t, s.DeletePriority(ctx, 404), entities.ErrPriorityNotFound)
	assert.ErrorIs(t, s.DeleteStatus(ctx, 404), entities.ErrStatusNotFound)
}

func TestCreateStatusDefaults(t *testing.T) {
	s := newLookupService()

	status, err := s.CreateStatus(context.Background(), ports.StatusRequest{
		Name:        "Done",
		IsCompleted: true,
		SortOrder:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultStatusColor, status.Color)
	assert.True(t, status.IsCompleted)
	assert.Equal(t, 4, status.SortOrder)
}
