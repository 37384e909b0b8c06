package services

import (
	"context"
	"sort"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// In-memory repositories for service tests. They mirror the repository
// contracts: sentinel errors for misses, rows-affected semantics for bulk
// calls, (sort_order, name) ordering for statuses.

type fakeTaskRepo struct {
	tasks  map[int64]*entities.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*entities.Task), nextID: 1}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	copied := *task
	copied.UpdatedAt = time.Now()
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) all() []*entities.Task {
	tasks := make([]*entities.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (r *fakeTaskRepo) List(_ context.Context, _ ports.TaskFilter) ([]*entities.Task, int64, error) {
	tasks := r.all()
	return tasks, int64(len(tasks)), nil
}

func (r *fakeTaskRepo) ListAll(_ context.Context, _ ports.TaskFilter) ([]*entities.Task, error) {
	return r.all(), nil
}

func (r *fakeTaskRepo) SetStatus(_ context.Context, taskID, statusID int64, completedAt *time.Time) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return entities.ErrTaskNotFound
	}
	task.StatusID = &statusID
	if completedAt != nil {
		task.CompletedAt = completedAt
	}
	return nil
}

func (r *fakeTaskRepo) BulkDelete(_ context.Context, taskIDs []int64) (int64, error) {
	var affected int64
	for _, id := range taskIDs {
		if _, ok := r.tasks[id]; ok {
			delete(r.tasks, id)
			affected++
		}
	}
	return affected, nil
}

func (r *fakeTaskRepo) BulkArchive(_ context.Context, taskIDs []int64) (int64, error) {
	var affected int64
	for _, id := range taskIDs {
		if task, ok := r.tasks[id]; ok {
			task.IsArchived = true
			affected++
		}
	}
	return affected, nil
}

func (r *fakeTaskRepo) BulkSetStatus(_ context.Context, taskIDs []int64, statusID int64) (int64, error) {
	var affected int64
	for _, id := range taskIDs {
		if task, ok := r.tasks[id]; ok {
			task.StatusID = &statusID
			affected++
		}
	}
	return affected, nil
}

func (r *fakeTaskRepo) BulkSetPriority(_ context.Context, taskIDs []int64, priorityID int64) (int64, error) {
	var affected int64
	for _, id := range taskIDs {
		if task, ok := r.tasks[id]; ok {
			task.PriorityID = &priorityID
			affected++
		}
	}
	return affected, nil
}

func (r *fakeTaskRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.tasks)), nil
}

func (r *fakeTaskRepo) CountCompleted(_ context.Context) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if task.IsCompleted() {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if task.IsOverdue(now) {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) CountByStatus(_ context.Context) ([]ports.StatusCount, error) {
	return nil, nil
}

func (r *fakeTaskRepo) CountByPriority(_ context.Context) ([]ports.PriorityCount, error) {
	return nil, nil
}

func (r *fakeTaskRepo) Recent(_ context.Context, limit int) ([]*entities.Task, error) {
	tasks := r.all()
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID > tasks[j].ID })
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (r *fakeTaskRepo) DueSoon(_ context.Context, now time.Time, days int) ([]*entities.Task, error) {
	until := now.AddDate(0, 0, days)
	var due []*entities.Task
	for _, task := range r.all() {
		if task.DueDate == nil || task.IsCompleted() {
			continue
		}
		if !task.DueDate.Before(now) && !task.DueDate.After(until) {
			due = append(due, task)
		}
	}
	return due, nil
}

type fakeStatusRepo struct {
	statuses map[int64]*entities.Status
}

func newFakeStatusRepo(statuses ...*entities.Status) *fakeStatusRepo {
	r := &fakeStatusRepo{statuses: make(map[int64]*entities.Status)}
	for _, s := range statuses {
		r.statuses[s.ID] = s
	}
	return r
}

func (r *fakeStatusRepo) Create(_ context.Context, status *entities.Status) error {
	if status.ID == 0 {
		status.ID = int64(len(r.statuses)) + 1
	}
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeStatusRepo) GetByID(_ context.Context, id int64) (*entities.Status, error) {
	status, ok := r.statuses[id]
	if !ok {
		return nil, entities.ErrStatusNotFound
	}
	return status, nil
}

func (r *fakeStatusRepo) Update(_ context.Context, status *entities.Status) error {
	if _, ok := r.statuses[status.ID]; !ok {
		return entities.ErrStatusNotFound
	}
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeStatusRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.statuses[id]; !ok {
		return entities.ErrStatusNotFound
	}
	delete(r.statuses, id)
	return nil
}

func (r *fakeStatusRepo) List(_ context.Context) ([]*entities.Status, error) {
	statuses := make([]*entities.Status, 0, len(r.statuses))
	for _, s := range r.statuses {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].SortOrder != statuses[j].SortOrder {
			return statuses[i].SortOrder < statuses[j].SortOrder
		}
		return statuses[i].Name < statuses[j].Name
	})
	return statuses, nil
}

type fakePriorityRepo struct {
	priorities map[int64]*entities.Priority
}

func newFakePriorityRepo(priorities ...*entities.Priority) *fakePriorityRepo {
	r := &fakePriorityRepo{priorities: make(map[int64]*entities.Priority)}
	for _, p := range priorities {
		r.priorities[p.ID] = p
	}
	return r
}

func (r *fakePriorityRepo) Create(_ context.Context, priority *entities.Priority) error {
	if priority.ID == 0 {
		priority.ID = int64(len(r.priorities)) + 1
	}
	r.priorities[priority.ID] = priority
	return nil
}

func (r *fakePriorityRepo) GetByID(_ context.Context, id int64) (*entities.Priority, error) {
	priority, ok := r.priorities[id]
	if !ok {
		return nil, entities.ErrPriorityNotFound
	}
	return priority, nil
}

func (r *fakePriorityRepo) Update(_ context.Context, priority *entities.Priority) error {
	if _, ok := r.priorities[priority.ID]; !ok {
		return entities.ErrPriorityNotFound
	}
	r.priorities[priority.ID] = priority
	return nil
}

func (r *fakePriorityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.priorities[id]; !ok {
		return entities.ErrPriorityNotFound
	}
	delete(r.priorities, id)
	return nil
}

func (r *fakePriorityRepo) List(_ context.Context) ([]*entities.Priority, error) {
	priorities := make([]*entities.Priority, 0, len(r.priorities))
	for _, p := range r.priorities {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i].Level < priorities[j].Level })
	return priorities, nil
}

type fakeCategoryRepo struct {
	categories map[int64]*entities.Category
}

func newFakeCategoryRepo(categories ...*entities.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[int64]*entities.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entities.Category) error {
	if category.ID == 0 {
		category.ID = int64(len(r.categories)) + 1
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*entities.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, entities.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entities.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return entities.ErrCategoryNotFound
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return entities.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entities.Category, error) {
	categories := make([]*entities.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

type fakeMemberRepo struct {
	members map[int64]*entities.Member
}

func newFakeMemberRepo(members ...*entities.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: make(map[int64]*entities.Member)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(_ context.Context, member *entities.Member) error {
	if member.ID == 0 {
		member.ID = int64(len(r.members)) + 1
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id int64) (*entities.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, entities.ErrMemberNotFound
	}
	return member, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *entities.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return entities.ErrMemberNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.members[id]; !ok {
		return entities.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) List(_ context.Context) ([]*entities.Member, error) {
	members := make([]*entities.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

type fakeCommentRepo struct {
	comments map[int64]*entities.TaskComment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*entities.TaskComment), nextID: 1}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entities.TaskComment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*entities.TaskComment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, entities.ErrCommentNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return entities.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByTask(_ context.Context, taskID int64) ([]*entities.TaskComment, error) {
	var comments []*entities.TaskComment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

type fakeAttachmentRepo struct {
	attachments map[int64]*entities.TaskAttachment
	nextID      int64
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[int64]*entities.TaskAttachment), nextID: 1}
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *entities.TaskAttachment) error {
	attachment.ID = r.nextID
	r.nextID++
	attachment.UploadedAt = time.Now()
	copied := *attachment
	r.attachments[attachment.ID] = &copied
	return nil
}

func (r *fakeAttachmentRepo) GetByID(_ context.Context, id int64) (*entities.TaskAttachment, error) {
	attachment, ok := r.attachments[id]
	if !ok {
		return nil, entities.ErrAttachmentNotFound
	}
	return attachment, nil
}

func (r *fakeAttachmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.attachments[id]; !ok {
		return entities.ErrAttachmentNotFound
	}
	delete(r.attachments, id)
	return nil
}

func (r *fakeAttachmentRepo) ListByTask(_ context.Context, taskID int64) ([]*entities.TaskAttachment, error) {
	var attachments []*entities.TaskAttachment
	for _, a := range r.attachments {
		if a.TaskID == taskID {
			attachments = append(attachments, a)
		}
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].ID < attachments[j].ID })
	return attachments, nil
}
