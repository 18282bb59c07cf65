package gql

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/technexus/blog-server/internal/auth"
	"github.com/technexus/blog-server/internal/models"
	"github.com/technexus/blog-server/internal/repo"
)

// msgInvalidCredentials is shared by the unknown-email and wrong-password
// paths so the two are indistinguishable to the client.
const msgInvalidCredentials = "Invalid email or password."

type SignupInput struct {
	Email     string
	Password  string
	Name      *string
	FirstName *string
	LastName  *string
}

type ArticleInput struct {
	Title        string
	Slug         string
	Excerpt      *string
	Content      *string
	CoverImage   *string
	CategoryID   *graphql.ID
	IsPublished  *bool
	IsFeatured   *bool
	IsTopPick    *bool
	TopPickOrder *int32
	PublishedAt  *graphql.Time
}

// ==========================
// Signup
// ==========================
func (r *Resolver) Signup(ctx context.Context, args struct{ Input SignupInput }) (*authPayloadResolver, error) {
	in := args.Input
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, errBadInput("A valid email address is required.")
	}
	if in.Password == "" {
		return nil, errBadInput("Password is required.")
	}

	username := strings.SplitN(in.Email, "@", 2)[0]
	if in.Name != nil && *in.Name != "" {
		username = *in.Name
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, r.internalErr("signup", err)
	}

	// Everyone starts as USER; role changes go through updateUserRole.
	user, err := r.UserRepo.Create(ctx, in.Email, username, hash, models.RoleUser, in.FirstName, in.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errBadInput("Email already in use.")
		}
		return nil, r.internalErr("signup", err)
	}

	token, err := r.Auth.IssueToken(user.ID)
	if err != nil {
		return nil, r.internalErr("signup", err)
	}

	return &authPayloadResolver{token: token, user: *user}, nil
}

// ==========================
// Login
// ==========================
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*authPayloadResolver, error) {
	user, err := r.UserRepo.GetByEmail(ctx, args.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errUnauthenticated(msgInvalidCredentials)
		}
		return nil, r.internalErr("login", err)
	}

	if !auth.CheckPassword(user.PasswordHash, args.Password) {
		return nil, errUnauthenticated(msgInvalidCredentials)
	}

	token, err := r.Auth.IssueToken(user.ID)
	if err != nil {
		return nil, r.internalErr("login", err)
	}

	return &authPayloadResolver{token: token, user: *user}, nil
}

// ==========================
// Create Article
// ==========================
func (r *Resolver) CreateArticle(ctx context.Context, args struct{ Input ArticleInput }) (*articleResolver, error) {
	caller := auth.UserFromContext(ctx)
	if caller == nil {
		return nil, errUnauthenticated("Not authenticated")
	}
	if !caller.Role.CanAuthor() {
		return nil, errForbidden("Not authorized to create articles.")
	}

	fields, err := articleFields(args.Input)
	if err != nil {
		return nil, err
	}

	article, err := r.ArticleRepo.Create(ctx, caller.ID, fields)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errBadInput("An article with this slug already exists.")
		}
		return nil, r.internalErr("createArticle", err)
	}

	_ = r.AuditRepo.Log(ctx, caller.ID, "create", "article", article.ID, article.Slug)

	return &articleResolver{root: r, a: article}, nil
}

// ==========================
// Update Article (owner or admin)
// ==========================
func (r *Resolver) UpdateArticle(ctx context.Context, args struct {
	ID    graphql.ID
	Input ArticleInput
}) (*articleResolver, error) {
	caller := auth.UserFromContext(ctx)
	if caller == nil {
		return nil, errUnauthenticated("Not authenticated")
	}

	existing, err := r.ArticleRepo.GetByID(ctx, string(args.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound("Article not found.")
		}
		return nil, r.internalErr("updateArticle", err)
	}
	if existing.AuthorID != caller.ID && caller.Role != models.RoleAdmin {
		return nil, errForbidden("Not authorized to update this article.")
	}

	fields, err := articleFields(args.Input)
	if err != nil {
		return nil, err
	}

	article, err := r.ArticleRepo.Update(ctx, existing.ID, fields)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errBadInput("An article with this slug already exists.")
		}
		return nil, r.internalErr("updateArticle", err)
	}

	_ = r.AuditRepo.Log(ctx, caller.ID, "update", "article", article.ID, article.Slug)

	return &articleResolver{root: r, a: article}, nil
}

// ==========================
// Delete Article (owner or admin)
// ==========================
func (r *Resolver) DeleteArticle(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	caller := auth.UserFromContext(ctx)
	if caller == nil {
		return false, errUnauthenticated("Not authenticated")
	}

	existing, err := r.ArticleRepo.GetByID(ctx, string(args.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, errNotFound("Article not found.")
		}
		return false, r.internalErr("deleteArticle", err)
	}
	if existing.AuthorID != caller.ID && caller.Role != models.RoleAdmin {
		return false, errForbidden("Not authorized to delete this article.")
	}

	if err := r.ArticleRepo.Delete(ctx, existing.ID); err != nil {
		return false, r.internalErr("deleteArticle", err)
	}

	_ = r.AuditRepo.Log(ctx, caller.ID, "delete", "article", existing.ID, existing.Slug)

	return true, nil
}

// ==========================
// Update User Role (admin only)
// ==========================
func (r *Resolver) UpdateUserRole(ctx context.Context, args struct {
	UserID graphql.ID
	Role   string
}) (*userResolver, error) {
	caller := auth.UserFromContext(ctx)
	if err := auth.Require(caller, models.RoleAdmin); err != nil {
		return nil, gateErr(err)
	}

	role, ok := models.ParseRole(args.Role)
	if !ok {
		return nil, errBadInput("Unknown role.")
	}

	user, err := r.UserRepo.UpdateRole(ctx, string(args.UserID), role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound("User not found.")
		}
		return nil, r.internalErr("updateUserRole", err)
	}

	_ = r.AuditRepo.Log(ctx, caller.ID, "role_change", "user", user.ID, string(role))

	return &userResolver{u: *user}, nil
}

// ==========================
// Create Comment
// ==========================
func (r *Resolver) CreateComment(ctx context.Context, args struct {
	ArticleSlug string
	Content     string
}) (*commentResolver, error) {
	caller := auth.UserFromContext(ctx)
	if caller == nil {
		return nil, errUnauthenticated("Not authenticated")
	}
	if strings.TrimSpace(args.Content) == "" {
		return nil, errBadInput("Comment content is required.")
	}

	article, err := r.ArticleRepo.GetBySlug(ctx, args.ArticleSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound("Article not found.")
		}
		return nil, r.internalErr("createComment", err)
	}

	comment, err := r.CommentRepo.Create(ctx, article.ID, caller.ID, args.Content)
	if err != nil {
		return nil, r.internalErr("createComment", err)
	}

	return &commentResolver{root: r, c: *comment}, nil
}

// ==========================
// Subscribe Newsletter
// ==========================
func (r *Resolver) SubscribeNewsletter(ctx context.Context, args struct{ Email string }) (bool, error) {
	if _, err := mail.ParseAddress(args.Email); err != nil {
		return false, errBadInput("A valid email address is required.")
	}

	if _, err := r.NewsletterRepo.Subscribe(ctx, args.Email); err != nil {
		if isUniqueViolation(err) {
			return false, errBadInput("Email already subscribed.")
		}
		return false, r.internalErr("subscribeNewsletter", err)
	}
	return true, nil
}

func articleFields(in ArticleInput) (repo.ArticleFields, error) {
	if strings.TrimSpace(in.Title) == "" {
		return repo.ArticleFields{}, errBadInput("Title is required.")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return repo.ArticleFields{}, errBadInput("Slug is required.")
	}

	f := repo.ArticleFields{
		Title:        in.Title,
		Slug:         in.Slug,
		Excerpt:      in.Excerpt,
		Content:      in.Content,
		CoverImage:   in.CoverImage,
		TopPickOrder: in.TopPickOrder,
	}
	if in.CategoryID != nil {
		id := string(*in.CategoryID)
		f.CategoryID = &id
	}
	if in.IsPublished != nil {
		f.IsPublished = *in.IsPublished
	}
	if in.IsFeatured != nil {
		f.IsFeatured = *in.IsFeatured
	}
	if in.IsTopPick != nil {
		f.IsTopPick = *in.IsTopPick
	}
	if in.PublishedAt != nil {
		t := in.PublishedAt.Time
		f.PublishedAt = &t
	}
	return f, nil
}
