package gql

import graphql "github.com/graph-gophers/graphql-go"

// Schema is the full API surface. Time is RFC 3339 via the library's Time scalar.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	enum UserRole {
		USER
		CONTRIBUTOR
		EDITOR
		ADMIN
	}

	type User {
		id: ID!
		email: String!
		username: String!
		role: UserRole!
		firstName: String
		lastName: String
		createdAt: Time!
		updatedAt: Time!
	}

	type Category {
		id: ID!
		name: String!
		slug: String!
		description: String
		articles(limit: Int = 10, offset: Int = 0): [Article!]!
	}

	type Tag {
		id: ID!
		name: String!
		slug: String!
	}

	type Comment {
		id: ID!
		content: String!
		createdAt: Time!
		author: User!
	}

	type Article {
		id: ID!
		title: String!
		slug: String!
		excerpt: String
		content: String
		coverImage: String
		isPublished: Boolean!
		isFeatured: Boolean!
		isTopPick: Boolean!
		topPickOrder: Int
		publishedAt: Time
		createdAt: Time!
		updatedAt: Time!
		author: User!
		category: Category
		tags: [Tag!]!
		comments: [Comment!]!
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type AuditEntry {
		id: ID!
		userId: ID!
		action: String!
		resourceType: String!
		resourceId: String!
		details: String!
		createdAt: Time!
	}

	type Stats {
		users: Int!
		publishedArticles: Int!
	}

	type Query {
		articles(limit: Int = 10, offset: Int = 0): [Article!]!
		article(slug: String!): Article
		relatedArticles(slug: String!, limit: Int = 4): [Article!]!
		searchArticles(query: String!, limit: Int = 10, offset: Int = 0): [Article!]!
		featuredArticles(limit: Int = 5): [Article!]!
		topPicks(limit: Int = 5): [Article!]!
		categories: [Category!]!
		category(slug: String!): Category
		tags: [Tag!]!
		tag(slug: String!): Tag
		me: User
		users(limit: Int = 50, offset: Int = 0): [User!]!
		auditLog(limit: Int = 50, offset: Int = 0): [AuditEntry!]!
		stats: Stats!
	}

	type Mutation {
		signup(input: SignupInput!): AuthPayload!
		login(email: String!, password: String!): AuthPayload!
		createArticle(input: ArticleInput!): Article!
		updateArticle(id: ID!, input: ArticleInput!): Article!
		deleteArticle(id: ID!): Boolean!
		updateUserRole(userId: ID!, role: UserRole!): User!
		createComment(articleSlug: String!, content: String!): Comment!
		subscribeNewsletter(email: String!): Boolean!
	}

	input SignupInput {
		email: String!
		password: String!
		name: String
		firstName: String
		lastName: String
	}

	input ArticleInput {
		title: String!
		slug: String!
		excerpt: String
		content: String
		coverImage: String
		categoryId: ID
		isPublished: Boolean = false
		isFeatured: Boolean = false
		isTopPick: Boolean = false
		topPickOrder: Int
		publishedAt: Time
	}
`

// MustSchema parses the schema against the root resolver, panicking on
// mismatch. Called once at startup.
func MustSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r, graphql.MaxDepth(12))
}
