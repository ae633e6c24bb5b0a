package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "taskmanager/internal/domain"
)

// testRepos bundles one backend's repositories so the same cases run
// against SQLite (always) and Postgres (integration builds).
type testRepos struct {
	users      UserRepo
	categories CategoryRepo
	tags       TagRepo
	tasks      TaskRepo
	subtasks   SubtaskRepo
	count      func(ctx context.Context, table string) (int64, error)
}

var repoCases = []struct {
	name string
	run  func(*testing.T, testRepos)
}{
	{"UserCreateDuplicateIsConflict", testUserCreateDuplicateIsConflict},
	{"CategoriesAreScopedToOwner", testCategoriesAreScopedToOwner},
	{"TaskTagReplaceSemantics", testTaskTagReplaceSemantics},
	{"TaskNeverLinksForeignTags", testTaskNeverLinksForeignTags},
	{"DeleteCategorySetsTaskCategoryNull", testDeleteCategorySetsTaskCategoryNull},
	{"DeleteCascades", testDeleteCascades},
	{"TaskListFiltersSearchAndOrdering", testTaskListFiltersSearchAndOrdering},
	{"TaskSearchFoldsNonASCII", testTaskSearchFoldsNonASCII},
	{"SubtasksScopedThroughTaskOwner", testSubtasksScopedThroughTaskOwner},
}

func (r testRepos) user(t *testing.T, name string) dom.User {
	t.Helper()
	u, err := r.users.Create(context.Background(), dom.User{Username: name, PasswordHash: "x", IsActive: true})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (r testRepos) category(t *testing.T, userID int64, name string) dom.Category {
	t.Helper()
	c, err := r.categories.Create(context.Background(), dom.Category{UserID: userID, Name: name, Color: "#112233"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func (r testRepos) tag(t *testing.T, userID int64, name string) dom.Tag {
	t.Helper()
	g, err := r.tags.Create(context.Background(), dom.Tag{UserID: userID, Name: name})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return g
}

func (r testRepos) task(t *testing.T, task dom.Task, tagIDs []int64) dom.Task {
	t.Helper()
	if task.Status == "" {
		task.Status = dom.DefaultTaskStatus
	}
	out, err := r.tasks.Create(context.Background(), task, tagIDs)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return out
}

func tagIDsOf(task dom.Task) []int64 {
	ids := make([]int64, len(task.Tags))
	for i, g := range task.Tags {
		ids[i] = g.ID
	}
	return ids
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testUserCreateDuplicateIsConflict(t *testing.T, r testRepos) {
	ctx := context.Background()
	u := r.user(t, "alice")
	if u.ID == 0 || u.DateJoined.IsZero() {
		t.Fatalf("expected id and date_joined, got %+v", u)
	}
	_, err := r.users.Create(ctx, dom.User{Username: "alice", PasswordHash: "y", IsActive: true})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	got, err := r.users.GetByUsername(ctx, "alice")
	if err != nil || got.ID != u.ID {
		t.Fatalf("get by username: %+v %v", got, err)
	}
	if _, err := r.users.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testCategoriesAreScopedToOwner(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice, bob := r.user(t, "alice"), r.user(t, "bob")
	c := r.category(t, alice.ID, "Work")
	r.category(t, bob.ID, "Home")

	list, err := r.categories.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("alice sees %+v", list)
	}
	if _, err := r.categories.GetByID(ctx, bob.ID, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob get: expected ErrNotFound, got %v", err)
	}
	c.UserID = bob.ID
	c.Name = "Hijacked"
	if _, err := r.categories.Update(ctx, c); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob update: expected ErrNotFound, got %v", err)
	}
	if err := r.categories.Delete(ctx, bob.ID, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob delete: expected ErrNotFound, got %v", err)
	}
	got, err := r.categories.GetByID(ctx, alice.ID, c.ID)
	if err != nil || got.Name != "Work" {
		t.Fatalf("category changed: %+v %v", got, err)
	}
}

func testTaskTagReplaceSemantics(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice := r.user(t, "alice")
	t1, t2, t3 := r.tag(t, alice.ID, "a"), r.tag(t, alice.ID, "b"), r.tag(t, alice.ID, "c")

	task := r.task(t, dom.Task{UserID: alice.ID, Title: "x"}, []int64{t1.ID, t2.ID, t1.ID})
	if got := tagIDsOf(task); !sameIDs(got, []int64{t1.ID, t2.ID}) {
		t.Fatalf("after create: %v", got)
	}

	task.Title = "renamed"
	updated, err := r.tasks.Update(ctx, task, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := tagIDsOf(updated); !sameIDs(got, []int64{t1.ID, t2.ID}) {
		t.Fatalf("absent tag_ids changed the set: %v", got)
	}

	replace := []int64{t3.ID}
	updated, err = r.tasks.Update(ctx, updated, &replace)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := tagIDsOf(updated); !sameIDs(got, []int64{t3.ID}) {
		t.Fatalf("after replace: %v", got)
	}

	empty := []int64{}
	updated, err = r.tasks.Update(ctx, updated, &empty)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatalf("expected cleared tags, got %v", tagIDsOf(updated))
	}
	if updated.Title != "renamed" {
		t.Fatalf("title lost: %q", updated.Title)
	}
}

func testTaskNeverLinksForeignTags(t *testing.T, r testRepos) {
	alice, bob := r.user(t, "alice"), r.user(t, "bob")
	mine := r.tag(t, alice.ID, "mine")
	theirs := r.tag(t, bob.ID, "theirs")

	task := r.task(t, dom.Task{UserID: alice.ID, Title: "x"}, []int64{mine.ID, theirs.ID})
	if got := tagIDsOf(task); !sameIDs(got, []int64{mine.ID}) {
		t.Fatalf("expected only own tag, got %v", got)
	}

	owned, err := r.tags.OwnedIDs(context.Background(), alice.ID, []int64{mine.ID, theirs.ID, 999})
	if err != nil {
		t.Fatalf("owned ids: %v", err)
	}
	if !sameIDs(owned, []int64{mine.ID}) {
		t.Fatalf("owned ids: %v", owned)
	}
}

func testDeleteCategorySetsTaskCategoryNull(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice := r.user(t, "alice")
	c := r.category(t, alice.ID, "Work")
	task := r.task(t, dom.Task{UserID: alice.ID, Title: "x", CategoryID: &c.ID}, nil)

	if err := r.categories.Delete(ctx, alice.ID, c.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := r.tasks.GetByID(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("task should survive: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("expected null category, got %d", *got.CategoryID)
	}
}

func testDeleteCascades(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice := r.user(t, "alice")
	g := r.tag(t, alice.ID, "a")
	task := r.task(t, dom.Task{UserID: alice.ID, Title: "x"}, []int64{g.ID})
	st, err := r.subtasks.Create(ctx, alice.ID, dom.Subtask{TaskID: task.ID, Description: "step"})
	if err != nil {
		t.Fatalf("create subtask: %v", err)
	}

	if err := r.tags.Delete(ctx, alice.ID, g.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	got, err := r.tasks.GetByID(ctx, alice.ID, task.ID)
	if err != nil || len(got.Tags) != 0 {
		t.Fatalf("tag link should be gone: %+v %v", got.Tags, err)
	}

	if err := r.tasks.Delete(ctx, alice.ID, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := r.subtasks.GetByID(ctx, alice.ID, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("subtask should cascade, got %v", err)
	}

	c := r.category(t, alice.ID, "Work")
	r.task(t, dom.Task{UserID: alice.ID, Title: "y", CategoryID: &c.ID}, nil)
	if err := r.users.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	for _, table := range []string{"categories", "tags", "tasks", "task_tags", "subtasks"} {
		n, err := r.count(ctx, table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("%s: %d rows left after user delete", table, n)
		}
	}
}

func testTaskListFiltersSearchAndOrdering(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice, bob := r.user(t, "alice"), r.user(t, "bob")
	work := r.category(t, alice.ID, "Work")
	day := func(d int) *time.Time {
		v := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	a := r.task(t, dom.Task{UserID: alice.ID, Title: "Report", Priority: 2, DueDate: day(10), CategoryID: &work.ID}, nil)
	b := r.task(t, dom.Task{UserID: alice.ID, Title: "Groceries", Description: "milk 100%", Priority: 1, DueDate: day(5)}, nil)
	c := r.task(t, dom.Task{UserID: alice.ID, Title: "Gym", Priority: 2, DueDate: day(1), Status: "Done"}, nil)
	r.task(t, dom.Task{UserID: bob.ID, Title: "Report for bob", Priority: 2}, nil)

	ids := func(list []dom.Task) []int64 {
		out := make([]int64, len(list))
		for i, task := range list {
			out[i] = task.ID
		}
		return out
	}
	run := func(f dom.TaskFilter) []int64 {
		t.Helper()
		list, err := r.tasks.List(ctx, alice.ID, f)
		if err != nil {
			t.Fatalf("list %+v: %v", f, err)
		}
		return ids(list)
	}
	prio2 := 2
	done := "Done"

	if got := run(dom.TaskFilter{}); !sameIDs(got, []int64{a.ID, b.ID, c.ID}) {
		t.Fatalf("default order: %v", got)
	}
	if got := run(dom.TaskFilter{Priority: &prio2}); !sameIDs(got, []int64{a.ID, c.ID}) {
		t.Fatalf("priority filter: %v", got)
	}
	if got := run(dom.TaskFilter{Status: &done}); !sameIDs(got, []int64{c.ID}) {
		t.Fatalf("status filter: %v", got)
	}
	if got := run(dom.TaskFilter{CategoryID: &work.ID}); !sameIDs(got, []int64{a.ID}) {
		t.Fatalf("category filter: %v", got)
	}
	if got := run(dom.TaskFilter{Ordering: []string{"due_date"}}); !sameIDs(got, []int64{c.ID, b.ID, a.ID}) {
		t.Fatalf("due_date order: %v", got)
	}
	if got := run(dom.TaskFilter{Ordering: []string{"-priority", "bogus"}}); !sameIDs(got, []int64{a.ID, c.ID, b.ID}) {
		t.Fatalf("-priority order with id tie-break: %v", got)
	}
	if got := run(dom.TaskFilter{Search: "work"}); !sameIDs(got, []int64{a.ID}) {
		t.Fatalf("search by category name: %v", got)
	}
	if got := run(dom.TaskFilter{Search: "REPORT"}); !sameIDs(got, []int64{a.ID}) {
		t.Fatalf("search must be case-insensitive and scoped: %v", got)
	}
	if got := run(dom.TaskFilter{Search: "100%"}); !sameIDs(got, []int64{b.ID}) {
		t.Fatalf("literal percent: %v", got)
	}
	if got := run(dom.TaskFilter{Search: "g", Priority: &prio2, Ordering: []string{"due_date"}}); !sameIDs(got, []int64{c.ID}) {
		t.Fatalf("search combined with filter: %v", got)
	}
}

func testTaskSearchFoldsNonASCII(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice := r.user(t, "alice")
	trip := r.task(t, dom.Task{UserID: alice.ID, Title: "École trip"}, nil)
	r.task(t, dom.Task{UserID: alice.ID, Title: "Errands", Description: "Straße"}, nil)
	travel := r.category(t, alice.ID, "Übersee")
	abroad := r.task(t, dom.Task{UserID: alice.ID, Title: "Visa", CategoryID: &travel.ID}, nil)

	for search, want := range map[string][]int64{
		"école":   {trip.ID},
		"ÉCOLE":   {trip.ID},
		"übersee": {abroad.ID},
		"zzz":     {},
	} {
		list, err := r.tasks.List(ctx, alice.ID, dom.TaskFilter{Search: search})
		if err != nil {
			t.Fatalf("list %q: %v", search, err)
		}
		got := make([]int64, len(list))
		for i, task := range list {
			got[i] = task.ID
		}
		if !sameIDs(got, want) {
			t.Fatalf("search %q: got %v, want %v", search, got, want)
		}
	}
}

func testSubtasksScopedThroughTaskOwner(t *testing.T, r testRepos) {
	ctx := context.Background()
	alice, bob := r.user(t, "alice"), r.user(t, "bob")
	aliceTask := r.task(t, dom.Task{UserID: alice.ID, Title: "a"}, nil)
	otherTask := r.task(t, dom.Task{UserID: alice.ID, Title: "b"}, nil)

	for _, c := range []struct {
		user, task int64
		want       bool
	}{
		{alice.ID, aliceTask.ID, true},
		{bob.ID, aliceTask.ID, false},
		{alice.ID, 9999, false},
	} {
		owned, err := r.subtasks.TaskOwned(ctx, c.user, c.task)
		if err != nil || owned != c.want {
			t.Fatalf("TaskOwned(%d, %d) = %v, %v; want %v", c.user, c.task, owned, err, c.want)
		}
	}

	if _, err := r.subtasks.Create(ctx, bob.ID, dom.Subtask{TaskID: aliceTask.ID, Description: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob create on alice task: expected ErrNotFound, got %v", err)
	}
	if _, err := r.subtasks.Create(ctx, alice.ID, dom.Subtask{TaskID: 9999, Description: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing task: expected ErrNotFound, got %v", err)
	}

	st, err := r.subtasks.Create(ctx, alice.ID, dom.Subtask{TaskID: aliceTask.ID, Description: "step 1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.subtasks.Create(ctx, alice.ID, dom.Subtask{TaskID: otherTask.ID, Description: "other"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := r.subtasks.List(ctx, alice.ID, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("alice list: %v %v", all, err)
	}
	only, err := r.subtasks.List(ctx, alice.ID, &aliceTask.ID)
	if err != nil || len(only) != 1 || only[0].ID != st.ID {
		t.Fatalf("filtered list: %v %v", only, err)
	}
	bobs, err := r.subtasks.List(ctx, bob.ID, nil)
	if err != nil || len(bobs) != 0 {
		t.Fatalf("bob list: %v %v", bobs, err)
	}

	st.IsCompleted = true
	if _, err := r.subtasks.Update(ctx, bob.ID, st); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob update: expected ErrNotFound, got %v", err)
	}
	got, err := r.subtasks.Update(ctx, alice.ID, st)
	if err != nil || !got.IsCompleted {
		t.Fatalf("alice update: %+v %v", got, err)
	}
	if err := r.subtasks.Delete(ctx, bob.ID, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob delete: expected ErrNotFound, got %v", err)
	}
	if err := r.subtasks.Delete(ctx, alice.ID, st.ID); err != nil {
		t.Fatalf("alice delete: %v", err)
	}
}
