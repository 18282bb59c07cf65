package gql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/technexus/blog-server/internal/models"
)

// Thin per-type resolvers wrapping domain values. Relations are resolved
// lazily through the root's repos. The password hash never has a resolver
// method, so it cannot cross the API boundary.

// ==========================
// User
// ==========================
type userResolver struct {
	u models.User
}

func (r *userResolver) ID() graphql.ID         { return graphql.ID(r.u.ID) }
func (r *userResolver) Email() string          { return r.u.Email }
func (r *userResolver) Username() string       { return r.u.Username }
func (r *userResolver) Role() string           { return string(r.u.Role) }
func (r *userResolver) FirstName() *string     { return r.u.FirstName }
func (r *userResolver) LastName() *string      { return r.u.LastName }
func (r *userResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.u.CreatedAt}
}
func (r *userResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.u.UpdatedAt}
}

// ==========================
// AuthPayload
// ==========================
type authPayloadResolver struct {
	token string
	user  models.User
}

func (r *authPayloadResolver) Token() string       { return r.token }
func (r *authPayloadResolver) User() *userResolver { return &userResolver{u: r.user} }

// ==========================
// AuditEntry
// ==========================
type auditEntryResolver struct {
	e models.AuditEntry
}

func (r *auditEntryResolver) ID() graphql.ID       { return graphql.ID(strconv.Itoa(r.e.ID)) }
func (r *auditEntryResolver) UserID() graphql.ID   { return graphql.ID(r.e.UserID) }
func (r *auditEntryResolver) Action() string       { return r.e.Action }
func (r *auditEntryResolver) ResourceType() string { return r.e.ResourceType }
func (r *auditEntryResolver) ResourceID() string   { return r.e.ResourceID }
func (r *auditEntryResolver) Details() string      { return r.e.Details }
func (r *auditEntryResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.e.CreatedAt}
}

// ==========================
// Stats
// ==========================
type statsResolver struct {
	users             int32
	publishedArticles int32
}

func (r *statsResolver) Users() int32             { return r.users }
func (r *statsResolver) PublishedArticles() int32 { return r.publishedArticles }

// ==========================
// Category
// ==========================
type categoryResolver struct {
	root *Resolver
	c    models.Category
}

func (r *categoryResolver) ID() graphql.ID       { return graphql.ID(r.c.ID) }
func (r *categoryResolver) Name() string         { return r.c.Name }
func (r *categoryResolver) Slug() string         { return r.c.Slug }
func (r *categoryResolver) Description() *string { return r.c.Description }

func (r *categoryResolver) Articles(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*articleResolver, error) {
	limit, offset := pageArgs(args.Limit, args.Offset, 10)
	articles, err := r.root.ArticleRepo.ListByCategory(ctx, r.c.ID, limit, offset)
	if err != nil {
		return nil, r.root.internalErr("category.articles", err)
	}
	return r.root.articleResolvers(articles), nil
}

// ==========================
// Tag
// ==========================
type tagResolver struct {
	t models.Tag
}

func (r *tagResolver) ID() graphql.ID { return graphql.ID(r.t.ID) }
func (r *tagResolver) Name() string   { return r.t.Name }
func (r *tagResolver) Slug() string   { return r.t.Slug }

// ==========================
// Comment
// ==========================
type commentResolver struct {
	root *Resolver
	c    models.Comment
}

func (r *commentResolver) ID() graphql.ID { return graphql.ID(r.c.ID) }
func (r *commentResolver) Content() string { return r.c.Content }
func (r *commentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.c.CreatedAt}
}

func (r *commentResolver) Author(ctx context.Context) (*userResolver, error) {
	user, err := r.root.UserRepo.GetByID(ctx, r.c.AuthorID)
	if err != nil {
		return nil, r.root.internalErr("comment.author", err)
	}
	return &userResolver{u: *user}, nil
}

// ==========================
// Article
// ==========================
type articleResolver struct {
	root *Resolver
	a    models.Article
}

func (r *articleResolver) ID() graphql.ID      { return graphql.ID(r.a.ID) }
func (r *articleResolver) Title() string       { return r.a.Title }
func (r *articleResolver) Slug() string        { return r.a.Slug }
func (r *articleResolver) Excerpt() *string    { return r.a.Excerpt }
func (r *articleResolver) Content() *string    { return r.a.Content }
func (r *articleResolver) CoverImage() *string { return r.a.CoverImage }
func (r *articleResolver) IsPublished() bool   { return r.a.IsPublished }
func (r *articleResolver) IsFeatured() bool    { return r.a.IsFeatured }
func (r *articleResolver) IsTopPick() bool     { return r.a.IsTopPick }
func (r *articleResolver) TopPickOrder() *int32 {
	return r.a.TopPickOrder
}
func (r *articleResolver) PublishedAt() *graphql.Time {
	return toGraphQLTime(r.a.PublishedAt)
}
func (r *articleResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.a.CreatedAt}
}
func (r *articleResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.a.UpdatedAt}
}

func (r *articleResolver) Author(ctx context.Context) (*userResolver, error) {
	user, err := r.root.UserRepo.GetByID(ctx, r.a.AuthorID)
	if err != nil {
		return nil, r.root.internalErr("article.author", err)
	}
	return &userResolver{u: *user}, nil
}

func (r *articleResolver) Category(ctx context.Context) (*categoryResolver, error) {
	if r.a.CategoryID == nil {
		return nil, nil
	}
	category, err := r.root.CategoryRepo.GetByID(ctx, *r.a.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.root.internalErr("article.category", err)
	}
	return &categoryResolver{root: r.root, c: *category}, nil
}

func (r *articleResolver) Tags(ctx context.Context) ([]*tagResolver, error) {
	tags, err := r.root.TagRepo.ListForArticle(ctx, r.a.ID)
	if err != nil {
		return nil, r.root.internalErr("article.tags", err)
	}
	out := make([]*tagResolver, 0, len(tags))
	for _, t := range tags {
		out = append(out, &tagResolver{t: t})
	}
	return out, nil
}

func (r *articleResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	comments, err := r.root.CommentRepo.ListByArticle(ctx, r.a.ID)
	if err != nil {
		return nil, r.root.internalErr("article.comments", err)
	}
	out := make([]*commentResolver, 0, len(comments))
	for _, c := range comments {
		out = append(out, &commentResolver{root: r.root, c: c})
	}
	return out, nil
}

func toGraphQLTime(t *time.Time) *graphql.Time {
	if t == nil {
		return nil
	}
	return &graphql.Time{Time: *t}
}
