package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"blogapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockBlogRepo(t *testing.T) (*BlogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBlogRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

var blogColumns = []string{"id", "title", "content", "author_id", "email", "created_at", "updated_at"}

func TestBlogRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	// Rows arrive in the order the query produced them: id DESC.
	rows := sqlmock.NewRows(blogColumns).
		AddRow(3, "Third", "c3", 1, "admin@example.com", "2025-01-06", "2025-01-06").
		AddRow(2, "Second", "c2", 2, "user@example.com", "2025-01-05", "2025-01-06").
		AddRow(1, "First", "c1", 1, "admin@example.com", "2025-01-04", "2025-01-04")
	mock.ExpectQuery(regexp.QuoteMeta(selectBlogsSQL)).WillReturnRows(rows)

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 blogs, got %d", len(out))
	}
	for i, wantID := range []int{3, 2, 1} {
		if out[i].ID != wantID {
			t.Fatalf("position %d: expected id %d, got %d", i, wantID, out[i].ID)
		}
	}
	if out[0].AuthorEmail != "admin@example.com" {
		t.Fatalf("expected joined author email, got %q", out[0].AuthorEmail)
	}
}

func TestBlogRepository_List_Empty(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectBlogsSQL)).
		WillReturnRows(sqlmock.NewRows(blogColumns))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestBlogRepository_GetByID(t *testing.T) {
	tests := []struct {
		name       string
		id         int
		mockExpect func(sqlmock.Sqlmock)
		wantBlog   *models.BlogWithAuthor
		wantErr    bool
	}{
		{
			name: "found",
			id:   5,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(5).
					WillReturnRows(sqlmock.NewRows(blogColumns).
						AddRow(5, "T", "C", 2, "u@x.com", "2025-03-01", "2025-03-02"))
			},
			wantBlog: &models.BlogWithAuthor{
				ID: 5, Title: "T", Content: "C", AuthorID: 2,
				AuthorEmail: "u@x.com", CreatedAt: "2025-03-01", UpdatedAt: "2025-03-02",
			},
		},
		{
			name: "absent returns nil, nil",
			id:   9,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(9).
					WillReturnError(sql.ErrNoRows)
			},
			wantBlog: nil,
		},
		{
			name: "query error",
			id:   1,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(1).
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			b, err := repo.GetByID(context.Background(), tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantBlog == nil {
				if b != nil {
					t.Fatalf("expected nil blog, got %+v", b)
				}
				return
			}
			if b == nil || *b != *tt.wantBlog {
				t.Fatalf("unexpected blog: want %+v, got %+v", tt.wantBlog, b)
			}
		})
	}
}

func TestBlogRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertBlogSQL)).
		WithArgs("T", "C", 2, "2026-08-30", "2026-08-30").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), models.Blog{
		Title: "T", Content: "C", AuthorID: 2,
		CreatedAt: "2026-08-30", UpdatedAt: "2026-08-30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
}

func TestBlogRepository_Create_ExecErrorRollsBack(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertBlogSQL)).
		WithArgs("T", "C", 2, "2026-08-30", "2026-08-30").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.Blog{
		Title: "T", Content: "C", AuthorID: 2,
		CreatedAt: "2026-08-30", UpdatedAt: "2026-08-30",
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !contains(err.Error(), "insert blog") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestBlogRepository_Update(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateBlogSQL)).
		WithArgs("T2", "C2", "2026-08-30", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Update(context.Background(), 5, "T2", "C2", "2026-08-30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBlogRepository_Delete(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteBlogSQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBlogRepository_Delete_ExecErrorRollsBack(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteBlogSQL)).
		WithArgs(5).
		WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 5); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
