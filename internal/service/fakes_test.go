package service

import (
	"context"
	"sync"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]dom.User
	nextID int64
	err    error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[int64]dom.User{}} }

func (f *fakeUsers) GetByID(_ context.Context, id int64) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return dom.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return dom.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return dom.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u dom.User) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return dom.User{}, repo.ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCategories struct {
	rows   map[int64]dom.Category
	nextID int64
}

func newFakeCategories() *fakeCategories { return &fakeCategories{rows: map[int64]dom.Category{}} }

func (f *fakeCategories) List(_ context.Context, userID int64) ([]dom.Category, error) {
	var out []dom.Category
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.rows[id]; ok && c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, userID, id int64) (dom.Category, error) {
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return dom.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategories) Create(_ context.Context, c dom.Category) (dom.Category, error) {
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCategories) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	if _, err := f.GetByID(ctx, c.UserID, c.ID); err != nil {
		return dom.Category{}, err
	}
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCategories) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

type fakeTags struct {
	rows   map[int64]dom.Tag
	nextID int64
}

func newFakeTags() *fakeTags { return &fakeTags{rows: map[int64]dom.Tag{}} }

func (f *fakeTags) List(_ context.Context, userID int64) ([]dom.Tag, error) {
	var out []dom.Tag
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.rows[id]; ok && g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeTags) GetByID(_ context.Context, userID, id int64) (dom.Tag, error) {
	g, ok := f.rows[id]
	if !ok || g.UserID != userID {
		return dom.Tag{}, repo.ErrNotFound
	}
	return g, nil
}

func (f *fakeTags) OwnedIDs(_ context.Context, userID int64, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if g, ok := f.rows[id]; ok && g.UserID == userID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeTags) Create(_ context.Context, g dom.Tag) (dom.Tag, error) {
	f.nextID++
	g.ID = f.nextID
	f.rows[g.ID] = g
	return g, nil
}

func (f *fakeTags) Update(ctx context.Context, g dom.Tag) (dom.Tag, error) {
	if _, err := f.GetByID(ctx, g.UserID, g.ID); err != nil {
		return dom.Tag{}, err
	}
	f.rows[g.ID] = g
	return g, nil
}

func (f *fakeTags) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

// fakeTasks records the arguments of the last write.
type fakeTasks struct {
	rows       map[int64]dom.Task
	nextID     int64
	lastFilter dom.TaskFilter
	lastTagIDs *[]int64
}

func newFakeTasks() *fakeTasks { return &fakeTasks{rows: map[int64]dom.Task{}} }

func (f *fakeTasks) List(_ context.Context, userID int64, flt dom.TaskFilter) ([]dom.Task, error) {
	f.lastFilter = flt
	var out []dom.Task
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.rows[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) GetByID(_ context.Context, userID, id int64) (dom.Task, error) {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, repo.ErrNotFound
	}
	return t, nil
}

func (f *fakeTasks) Create(_ context.Context, t dom.Task, tagIDs []int64) (dom.Task, error) {
	f.nextID++
	t.ID = f.nextID
	ids := tagIDs
	f.lastTagIDs = &ids
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTasks) Update(ctx context.Context, t dom.Task, tagIDs *[]int64) (dom.Task, error) {
	if _, err := f.GetByID(ctx, t.UserID, t.ID); err != nil {
		return dom.Task{}, err
	}
	f.lastTagIDs = tagIDs
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTasks) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

// fakeSubtasks resolves ownership through a taskOwner map.
type fakeSubtasks struct {
	taskOwner map[int64]int64
	rows      map[int64]dom.Subtask
	nextID    int64
	createErr error
	ownedErr  error
}

func newFakeSubtasks(taskOwner map[int64]int64) *fakeSubtasks {
	return &fakeSubtasks{taskOwner: taskOwner, rows: map[int64]dom.Subtask{}}
}

func (f *fakeSubtasks) List(_ context.Context, userID int64, taskID *int64) ([]dom.Subtask, error) {
	var out []dom.Subtask
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.rows[id]
		if !ok || f.taskOwner[s.TaskID] != userID {
			continue
		}
		if taskID != nil && s.TaskID != *taskID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubtasks) GetByID(_ context.Context, userID, id int64) (dom.Subtask, error) {
	s, ok := f.rows[id]
	if !ok || f.taskOwner[s.TaskID] != userID {
		return dom.Subtask{}, repo.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubtasks) TaskOwned(_ context.Context, userID, taskID int64) (bool, error) {
	if f.ownedErr != nil {
		return false, f.ownedErr
	}
	owner, ok := f.taskOwner[taskID]
	return ok && owner == userID, nil
}

func (f *fakeSubtasks) Create(_ context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	if f.createErr != nil {
		return dom.Subtask{}, f.createErr
	}
	if owner, ok := f.taskOwner[s.TaskID]; !ok || owner != userID {
		return dom.Subtask{}, repo.ErrNotFound
	}
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeSubtasks) Update(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	if _, err := f.GetByID(ctx, userID, s.ID); err != nil {
		return dom.Subtask{}, err
	}
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeSubtasks) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}
