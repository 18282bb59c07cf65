package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func articleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "excerpt", "content", "cover_image", "author_id", "category_id",
		"is_published", "is_featured", "is_top_pick", "top_pick_order", "published_at", "created_at", "updated_at",
	})
}

func addArticleRow(rows *sqlmock.Rows, id, title, slug, authorID string, published bool) *sqlmock.Rows {
	return rows.AddRow(id, title, slug, nil, nil, nil, authorID, nil,
		published, false, false, nil, now(), now(), now())
}

func TestArticleRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO articles`).
		WithArgs(sqlmock.AnyArg(), "Go Generics", "go-generics", nil, nil, nil, "author-1", nil,
			true, false, false, nil, sqlmock.AnyArg()).
		WillReturnRows(addArticleRow(articleRows(), "a-1", "Go Generics", "go-generics", "author-1", true))

	repo := NewArticleRepo(db)
	pub := now()
	article, err := repo.Create(context.Background(), "author-1", ArticleFields{
		Title:       "Go Generics",
		Slug:        "go-generics",
		IsPublished: true,
		PublishedAt: &pub,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if article.ID != "a-1" || article.Slug != "go-generics" || article.AuthorID != "author-1" {
		t.Errorf("unexpected article: %+v", article)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleRepo_GetBySlug_UnpublishedHidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The slug query filters on is_published, so a draft row behaves like no row.
	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE slug = \$1 AND is_published = TRUE`).
		WithArgs("draft-post").
		WillReturnError(sql.ErrNoRows)

	repo := NewArticleRepo(db)
	_, err = repo.GetBySlug(context.Background(), "draft-post")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleRepo_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := articleRows()
	addArticleRow(rows, "a-1", "Intro to Kubernetes", "intro-to-kubernetes", "author-1", true)
	addArticleRow(rows, "a-2", "Kubernetes Networking", "kubernetes-networking", "author-2", true)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE is_published = TRUE AND \(title ILIKE`).
		WithArgs("%kubernetes%", 10, 0).
		WillReturnRows(rows)

	repo := NewArticleRepo(db)
	articles, err := repo.Search(context.Background(), "kubernetes", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != "a-1" || articles[1].ID != "a-2" {
		t.Errorf("unexpected order: %+v", articles)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleRepo_PublishDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE articles\s+SET is_published = TRUE`).
		WithArgs(at).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewArticleRepo(db)
	n, err := repo.PublishDue(context.Background(), at)
	if err != nil {
		t.Fatalf("PublishDue: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 published, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).
		WithArgs("a-9").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewArticleRepo(db)
	if err := repo.Delete(context.Background(), "a-9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
