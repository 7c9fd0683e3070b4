package comment

import (
	"context"
	"testing"
	"time"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/usecase/task"
)

type fakeCommentRepo struct {
	comments map[string]domain.Comment
}

func newFakeRepo(comments ...domain.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: make(map[string]domain.Comment)}
	for _, c := range comments {
		r.comments[c.ID] = c
	}
	return r
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	out := c
	return &out, nil
}

func (r *fakeCommentRepo) ListByTask(_ context.Context, taskID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	if c.ID == "" {
		c.ID = "generated"
	}
	r.comments[c.ID] = *c
	return c, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func ts(day int) time.Time {
	return time.Date(2024, time.June, day, 9, 0, 0, 0, time.UTC)
}

func TestListByTaskOrdersOldestFirst(t *testing.T) {
	repo := newFakeRepo(
		domain.Comment{ID: "c2", TaskID: "t1", CreatedAt: ts(12)},
		domain.Comment{ID: "c1", TaskID: "t1", CreatedAt: ts(10)},
		domain.Comment{ID: "other", TaskID: "t2", CreatedAt: ts(11)},
	)
	uc := New(repo, nil, nil)

	got, err := uc.ListByTask(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("order = %v", got)
	}
}

func TestCreateStampsAuthor(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil, nil).WithClock(func() time.Time { return ts(15) })

	created, err := uc.Create(context.Background(), task.Actor{EmployeeID: "E001"}, &domain.Comment{TaskID: "t1", Content: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if created.EmployeeID != "E001" {
		t.Errorf("author = %s", created.EmployeeID)
	}
	if !created.CreatedAt.Equal(ts(15)) {
		t.Errorf("createdAt = %v", created.CreatedAt)
	}
}

func TestCreateRejectsBlankContent(t *testing.T) {
	uc := New(newFakeRepo(), nil, nil)
	_, err := uc.Create(context.Background(), task.Actor{EmployeeID: "E001"}, &domain.Comment{TaskID: "t1", Content: "   "})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("err = %v", err)
	}
}

func TestUpdatePermissions(t *testing.T) {
	base := domain.Comment{ID: "c1", TaskID: "t1", EmployeeID: "E001", Content: "old", CreatedAt: ts(10)}

	cases := []struct {
		name  string
		actor task.Actor
		ok    bool
	}{
		{"author", task.Actor{EmployeeID: "E001"}, true},
		{"admin", task.Actor{EmployeeID: "root", IsAdmin: true}, true},
		{"stranger", task.Actor{EmployeeID: "E002"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := New(newFakeRepo(base), nil, nil)
			got, err := uc.Update(context.Background(), tc.actor, "c1", "new")
			if tc.ok {
				if err != nil {
					t.Fatal(err)
				}
				if got.Content != "new" || got.EmployeeID != "E001" {
					t.Errorf("got %+v", got)
				}
			} else if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
				t.Errorf("err = %v, want FORBIDDEN", err)
			}
		})
	}
}

func TestDeleteForbiddenLeavesComment(t *testing.T) {
	repo := newFakeRepo(domain.Comment{ID: "c1", EmployeeID: "E001"})
	uc := New(repo, nil, nil)

	err := uc.Delete(context.Background(), task.Actor{EmployeeID: "E002"}, "c1")
	if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := repo.comments["c1"]; !ok {
		t.Error("comment must survive a rejected delete")
	}
}
