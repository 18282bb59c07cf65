package gql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"github.com/technexus/blog-server/internal/auth"
	"github.com/technexus/blog-server/internal/models"
	"github.com/technexus/blog-server/internal/repo"
)

// ==========================
// Root Resolver
// ==========================
type Resolver struct {
	UserRepo       *repo.UserRepo
	ArticleRepo    *repo.ArticleRepo
	CategoryRepo   *repo.CategoryRepo
	TagRepo        *repo.TagRepo
	CommentRepo    *repo.CommentRepo
	AuditRepo      *repo.AuditRepo
	NewsletterRepo *repo.NewsletterRepo
	Auth           *auth.Service
	Log            *slog.Logger
}

func NewResolver(db *sql.DB, authSvc *auth.Service, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		UserRepo:       repo.NewUserRepo(db),
		ArticleRepo:    repo.NewArticleRepo(db),
		CategoryRepo:   repo.NewCategoryRepo(db),
		TagRepo:        repo.NewTagRepo(db),
		CommentRepo:    repo.NewCommentRepo(db),
		AuditRepo:      repo.NewAuditRepo(db),
		NewsletterRepo: repo.NewNewsletterRepo(db),
		Auth:           authSvc,
		Log:            log,
	}
}

// internalErr logs the real failure server-side and returns the generic
// INTERNAL_SERVER_ERROR to the client.
func (r *Resolver) internalErr(op string, err error) error {
	r.Log.Error("resolver failure", "op", op, "error", err)
	return errInternal()
}

// gateErr maps the role gate sentinels onto distinct API error codes.
func gateErr(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return errUnauthenticated("Not authenticated")
	case errors.Is(err, auth.ErrForbidden):
		return errForbidden("Not authorized")
	}
	return err
}

// isUniqueViolation reports a Postgres unique-constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// maxPageSize caps list sizes regardless of the requested limit.
const maxPageSize = 100

func pageArgs(limit, offset *int32, defLimit int) (int, int) {
	l, o := defLimit, 0
	if limit != nil && *limit > 0 {
		l = int(*limit)
	}
	if l > maxPageSize {
		l = maxPageSize
	}
	if offset != nil && *offset >= 0 {
		o = int(*offset)
	}
	return l, o
}

// ==========================
// Queries
// ==========================

func (r *Resolver) Articles(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*articleResolver, error) {
	limit, offset := pageArgs(args.Limit, args.Offset, 10)
	articles, err := r.ArticleRepo.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, r.internalErr("articles", err)
	}
	return r.articleResolvers(articles), nil
}

func (r *Resolver) Article(ctx context.Context, args struct{ Slug string }) (*articleResolver, error) {
	article, err := r.ArticleRepo.GetBySlug(ctx, args.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.internalErr("article", err)
	}
	return &articleResolver{root: r, a: article}, nil
}

// RelatedArticles returns other published articles in the same category as
// the named one. An unknown slug or an uncategorized article yields an empty
// list rather than an error.
func (r *Resolver) RelatedArticles(ctx context.Context, args struct {
	Slug  string
	Limit *int32
}) ([]*articleResolver, error) {
	limit, _ := pageArgs(args.Limit, nil, 4)

	article, err := r.ArticleRepo.GetBySlug(ctx, args.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*articleResolver{}, nil
		}
		return nil, r.internalErr("relatedArticles", err)
	}
	if article.CategoryID == nil {
		return []*articleResolver{}, nil
	}

	// Fetch one extra so the source article can be dropped from its own results.
	candidates, err := r.ArticleRepo.ListByCategory(ctx, *article.CategoryID, limit+1, 0)
	if err != nil {
		return nil, r.internalErr("relatedArticles", err)
	}

	related := make([]models.Article, 0, limit)
	for _, c := range candidates {
		if c.ID == article.ID {
			continue
		}
		related = append(related, c)
		if len(related) == limit {
			break
		}
	}
	return r.articleResolvers(related), nil
}

func (r *Resolver) SearchArticles(ctx context.Context, args struct {
	Query  string
	Limit  *int32
	Offset *int32
}) ([]*articleResolver, error) {
	limit, offset := pageArgs(args.Limit, args.Offset, 10)
	articles, err := r.ArticleRepo.Search(ctx, args.Query, limit, offset)
	if err != nil {
		return nil, r.internalErr("searchArticles", err)
	}
	return r.articleResolvers(articles), nil
}

func (r *Resolver) FeaturedArticles(ctx context.Context, args struct{ Limit *int32 }) ([]*articleResolver, error) {
	limit, _ := pageArgs(args.Limit, nil, 5)
	articles, err := r.ArticleRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, r.internalErr("featuredArticles", err)
	}
	return r.articleResolvers(articles), nil
}

func (r *Resolver) TopPicks(ctx context.Context, args struct{ Limit *int32 }) ([]*articleResolver, error) {
	limit, _ := pageArgs(args.Limit, nil, 5)
	articles, err := r.ArticleRepo.ListTopPicks(ctx, limit)
	if err != nil {
		return nil, r.internalErr("topPicks", err)
	}
	return r.articleResolvers(articles), nil
}

func (r *Resolver) Categories(ctx context.Context) ([]*categoryResolver, error) {
	categories, err := r.CategoryRepo.List(ctx)
	if err != nil {
		return nil, r.internalErr("categories", err)
	}
	out := make([]*categoryResolver, 0, len(categories))
	for _, c := range categories {
		out = append(out, &categoryResolver{root: r, c: c})
	}
	return out, nil
}

func (r *Resolver) Category(ctx context.Context, args struct{ Slug string }) (*categoryResolver, error) {
	category, err := r.CategoryRepo.GetBySlug(ctx, args.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.internalErr("category", err)
	}
	return &categoryResolver{root: r, c: *category}, nil
}

func (r *Resolver) Tags(ctx context.Context) ([]*tagResolver, error) {
	tags, err := r.TagRepo.List(ctx)
	if err != nil {
		return nil, r.internalErr("tags", err)
	}
	out := make([]*tagResolver, 0, len(tags))
	for _, t := range tags {
		out = append(out, &tagResolver{t: t})
	}
	return out, nil
}

func (r *Resolver) Tag(ctx context.Context, args struct{ Slug string }) (*tagResolver, error) {
	tag, err := r.TagRepo.GetBySlug(ctx, args.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.internalErr("tag", err)
	}
	return &tagResolver{t: *tag}, nil
}

// Me returns the caller's own record, or null for anonymous requests.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, nil
	}
	return &userResolver{u: *user}, nil
}

// Users lists accounts. Admin only.
func (r *Resolver) Users(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*userResolver, error) {
	if err := auth.Require(auth.UserFromContext(ctx), models.RoleAdmin); err != nil {
		return nil, gateErr(err)
	}
	limit, offset := pageArgs(args.Limit, args.Offset, 50)
	users, err := r.UserRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, r.internalErr("users", err)
	}
	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{u: u})
	}
	return out, nil
}

// AuditLog lists recent privileged actions, newest first. Admin only.
func (r *Resolver) AuditLog(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*auditEntryResolver, error) {
	if err := auth.Require(auth.UserFromContext(ctx), models.RoleAdmin); err != nil {
		return nil, gateErr(err)
	}
	limit, offset := pageArgs(args.Limit, args.Offset, 50)
	entries, err := r.AuditRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, r.internalErr("auditLog", err)
	}
	out := make([]*auditEntryResolver, 0, len(entries))
	for _, e := range entries {
		out = append(out, &auditEntryResolver{e: e})
	}
	return out, nil
}

// Stats reports site totals. Admin only.
func (r *Resolver) Stats(ctx context.Context) (*statsResolver, error) {
	if err := auth.Require(auth.UserFromContext(ctx), models.RoleAdmin); err != nil {
		return nil, gateErr(err)
	}
	users, err := r.UserRepo.Count(ctx)
	if err != nil {
		return nil, r.internalErr("stats", err)
	}
	articles, err := r.ArticleRepo.CountPublished(ctx)
	if err != nil {
		return nil, r.internalErr("stats", err)
	}
	return &statsResolver{users: int32(users), publishedArticles: int32(articles)}, nil
}

func (r *Resolver) articleResolvers(articles []models.Article) []*articleResolver {
	out := make([]*articleResolver, 0, len(articles))
	for _, a := range articles {
		out = append(out, &articleResolver{root: r, a: a})
	}
	return out
}
