package gql

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technexus/blog-server/internal/auth"
	"github.com/technexus/blog-server/internal/models"
	"github.com/technexus/blog-server/internal/repo"

	graphql "github.com/graph-gophers/graphql-go"
)

func newTestResolver(t *testing.T) (*Resolver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := auth.NewService([]byte("test-secret"), time.Hour, repo.NewUserRepo(db))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(db, svc, log), mock
}

// errCode extracts the machine-readable code a resolver error carries in its
// GraphQL extensions.
func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	ext, ok := err.(interface{ Extensions() map[string]interface{} })
	require.True(t, ok, "error does not carry extensions: %v", err)
	code, _ := ext.Extensions()["code"].(string)
	return code
}

func testUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "username", "password_hash", "role",
		"first_name", "last_name", "created_at", "updated_at",
	})
}

func testArticleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "excerpt", "content", "cover_image", "author_id", "category_id",
		"is_published", "is_featured", "is_top_pick", "top_pick_order", "published_at", "created_at", "updated_at",
	})
}

func asUser(u models.User) context.Context {
	return auth.WithUser(context.Background(), &u)
}

// ==========================
// Login
// ==========================

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE email = \$1`).
		WithArgs("alice@x.com").
		WillReturnRows(testUserRows().AddRow(
			"u-1", "alice@x.com", "alice", hash, "USER", nil, nil, time.Now(), time.Now()))

	_, unknownErr := r.Login(context.Background(), struct{ Email, Password string }{
		Email: "ghost@x.com", Password: "whatever",
	})
	_, wrongErr := r.Login(context.Background(), struct{ Email, Password string }{
		Email: "alice@x.com", Password: "not-the-password",
	})

	// Both failures must be byte-identical so callers cannot probe which
	// emails have accounts.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, CodeUnauthenticated, errCode(t, unknownErr))
	assert.Equal(t, CodeUnauthenticated, errCode(t, wrongErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE email = \$1`).
		WithArgs("alice@x.com").
		WillReturnRows(testUserRows().AddRow(
			"u-1", "alice@x.com", "alice", hash, "EDITOR", nil, nil, time.Now(), time.Now()))

	payload, err := r.Login(context.Background(), struct{ Email, Password string }{
		Email: "alice@x.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.NotEmpty(t, payload.Token())
	assert.Equal(t, "alice@x.com", payload.User().Email())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Signup
// ==========================

func TestSignup_DuplicateEmail(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "alice@x.com", "alice", sqlmock.AnyArg(), models.RoleUser, nil, nil).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := r.Signup(context.Background(), struct{ Input SignupInput }{Input: SignupInput{
		Email: "alice@x.com", Password: "hunter22",
	}})
	assert.Equal(t, CodeBadUserInput, errCode(t, err))
	assert.Equal(t, "Email already in use.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_InvalidEmail(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Signup(context.Background(), struct{ Input SignupInput }{Input: SignupInput{
		Email: "not-an-email", Password: "hunter22",
	}})
	assert.Equal(t, CodeBadUserInput, errCode(t, err))
}

func TestSignup_AlwaysStartsAsUser(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "bob@x.com", "bob", sqlmock.AnyArg(), models.RoleUser, nil, nil).
		WillReturnRows(testUserRows().AddRow(
			"u-2", "bob@x.com", "bob", "$2a$10$hash", "USER", nil, nil, time.Now(), time.Now()))

	payload, err := r.Signup(context.Background(), struct{ Input SignupInput }{Input: SignupInput{
		Email: "bob@x.com", Password: "hunter22",
	}})
	require.NoError(t, err)
	assert.Equal(t, "USER", payload.User().Role())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_PersistsNames(t *testing.T) {
	r, mock := newTestResolver(t)

	first, last := "Ada", "Lovelace"
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "ada@x.com", "ada", sqlmock.AnyArg(), models.RoleUser, &first, &last).
		WillReturnRows(testUserRows().AddRow(
			"u-3", "ada@x.com", "ada", "$2a$10$hash", "USER", first, last, time.Now(), time.Now()))

	payload, err := r.Signup(context.Background(), struct{ Input SignupInput }{Input: SignupInput{
		Email: "ada@x.com", Password: "hunter22", FirstName: &first, LastName: &last,
	}})
	require.NoError(t, err)
	require.NotNil(t, payload.User().FirstName())
	assert.Equal(t, "Ada", *payload.User().FirstName())
	require.NotNil(t, payload.User().LastName())
	assert.Equal(t, "Lovelace", *payload.User().LastName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Article mutations
// ==========================

func TestCreateArticle_ReaderForbidden(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleUser})
	_, err := r.CreateArticle(ctx, struct{ Input ArticleInput }{Input: ArticleInput{
		Title: "T", Slug: "t",
	}})
	assert.Equal(t, CodeForbidden, errCode(t, err))
}

func TestCreateArticle_Anonymous(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.CreateArticle(context.Background(), struct{ Input ArticleInput }{Input: ArticleInput{
		Title: "T", Slug: "t",
	}})
	assert.Equal(t, CodeUnauthenticated, errCode(t, err))
}

func TestDeleteArticle_NonOwnerForbidden(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(testArticleRows().AddRow(
			"a-1", "T", "t", nil, nil, nil, "owner-1", nil,
			true, false, false, nil, nil, time.Now(), time.Now()))

	ctx := asUser(models.User{ID: "someone-else", Role: models.RoleContributor})
	ok, err := r.DeleteArticle(ctx, struct{ ID graphql.ID }{ID: "a-1"})
	assert.False(t, ok)
	assert.Equal(t, CodeForbidden, errCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArticle_AdminOverride(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(testArticleRows().AddRow(
			"a-1", "T", "t", nil, nil, nil, "owner-1", nil,
			true, false, false, nil, nil, time.Now(), time.Now()))
	mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("admin-1", "delete", "article", "a-1", "t").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := asUser(models.User{ID: "admin-1", Role: models.RoleAdmin})
	ok, err := r.DeleteArticle(ctx, struct{ ID graphql.ID }{ID: "a-1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArticle_NotFound(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleAdmin})
	_, err := r.DeleteArticle(ctx, struct{ ID graphql.ID }{ID: "missing"})
	assert.Equal(t, CodeNotFound, errCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Role management
// ==========================

func TestUpdateUserRole_NonAdmin(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleEditor})
	_, err := r.UpdateUserRole(ctx, struct {
		UserID graphql.ID
		Role   string
	}{UserID: "u-2", Role: "ADMIN"})
	assert.Equal(t, CodeForbidden, errCode(t, err))
}

func TestUpdateUserRole_Anonymous(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.UpdateUserRole(context.Background(), struct {
		UserID graphql.ID
		Role   string
	}{UserID: "u-2", Role: "ADMIN"})
	assert.Equal(t, CodeUnauthenticated, errCode(t, err))
}

func TestUpdateUserRole_UnknownRole(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "admin-1", Role: models.RoleAdmin})
	_, err := r.UpdateUserRole(ctx, struct {
		UserID graphql.ID
		Role   string
	}{UserID: "u-2", Role: "SUPERUSER"})
	assert.Equal(t, CodeBadUserInput, errCode(t, err))
}

// ==========================
// Queries
// ==========================

func TestMe_AnonymousIsNull(t *testing.T) {
	r, _ := newTestResolver(t)

	me, err := r.Me(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, me)
}

func TestArticle_MissingSlugIsNull(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE slug = \$1 AND is_published = TRUE`).
		WithArgs("no-such-post").
		WillReturnError(sql.ErrNoRows)

	article, err := r.Article(context.Background(), struct{ Slug string }{Slug: "no-such-post"})
	assert.NoError(t, err)
	assert.Nil(t, article)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_AdminOnly(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleContributor})
	_, err := r.Users(ctx, struct{ Limit, Offset *int32 }{})
	assert.Equal(t, CodeForbidden, errCode(t, err))
}

func TestArticles_LimitClamped(t *testing.T) {
	r, mock := newTestResolver(t)

	// A huge requested page size is clamped before reaching the database.
	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE is_published = TRUE`).
		WithArgs(100, 0).
		WillReturnRows(testArticleRows())

	huge := int32(5000)
	_, err := r.Articles(context.Background(), struct{ Limit, Offset *int32 }{Limit: &huge})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelatedArticles_ExcludesSelf(t *testing.T) {
	r, mock := newTestResolver(t)

	rows := testArticleRows().AddRow(
		"a-1", "Intro to Go", "intro-to-go", nil, nil, nil, "author-1", "c-1",
		true, false, false, nil, nil, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE slug = \$1 AND is_published = TRUE`).
		WithArgs("intro-to-go").
		WillReturnRows(rows)

	related := testArticleRows()
	for _, row := range [][2]string{{"a-1", "intro-to-go"}, {"a-2", "go-generics"}, {"a-3", "go-modules"}} {
		related.AddRow(row[0], "T", row[1], nil, nil, nil, "author-1", "c-1",
			true, false, false, nil, nil, time.Now(), time.Now())
	}
	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE is_published = TRUE AND category_id = \$1`).
		WithArgs("c-1", 5, 0).
		WillReturnRows(related)

	out, err := r.RelatedArticles(context.Background(), struct {
		Slug  string
		Limit *int32
	}{Slug: "intro-to-go"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "go-generics", out[0].Slug())
	assert.Equal(t, "go-modules", out[1].Slug())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelatedArticles_UnknownSlugIsEmpty(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM articles\s+WHERE slug = \$1 AND is_published = TRUE`).
		WithArgs("no-such-post").
		WillReturnError(sql.ErrNoRows)

	out, err := r.RelatedArticles(context.Background(), struct {
		Slug  string
		Limit *int32
	}{Slug: "no-such-post"})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLog_AdminOnly(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleEditor})
	_, err := r.AuditLog(ctx, struct{ Limit, Offset *int32 }{})
	assert.Equal(t, CodeForbidden, errCode(t, err))

	_, err = r.AuditLog(context.Background(), struct{ Limit, Offset *int32 }{})
	assert.Equal(t, CodeUnauthenticated, errCode(t, err))
}

func TestAuditLog_ListsEntries(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT (.+) FROM audit_log ORDER BY created_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "action", "resource_type", "resource_id", "details", "created_at",
		}).AddRow(1, "admin-1", "role_change", "user", "u-2", "EDITOR", time.Now()))

	ctx := asUser(models.User{ID: "admin-1", Role: models.RoleAdmin})
	entries, err := r.AuditLog(ctx, struct{ Limit, Offset *int32 }{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "role_change", entries[0].Action())
	assert.Equal(t, "EDITOR", entries[0].Details())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats_AdminOnly(t *testing.T) {
	r, _ := newTestResolver(t)

	ctx := asUser(models.User{ID: "u-1", Role: models.RoleContributor})
	_, err := r.Stats(ctx)
	assert.Equal(t, CodeForbidden, errCode(t, err))
}

func TestStats_Counts(t *testing.T) {
	r, mock := newTestResolver(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE is_published = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	ctx := asUser(models.User{ID: "admin-1", Role: models.RoleAdmin})
	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(12), stats.Users())
	assert.Equal(t, int32(7), stats.PublishedArticles())
	assert.NoError(t, mock.ExpectationsWereMet())
}
