package articles

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/technexus/blog-server/cmd/cli/client"
	"github.com/technexus/blog-server/cmd/cli/output"
	"github.com/technexus/blog-server/cmd/cli/root"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "Manage articles",
		Long:  "List published articles and delete articles you own (or any, as ADMIN).",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(limit, offset)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of articles to list")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Offset into the article list")

	var articleID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an article",
		RunE: func(cmd *cobra.Command, args []string) error {
			if articleID == "" {
				return fmt.Errorf("--id is required")
			}
			return runDelete(articleID)
		},
	}
	deleteCmd.Flags().StringVar(&articleID, "id", "", "Article ID")

	var query string
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}
			return runSearch(query, limit, offset)
		},
	}
	searchCmd.Flags().StringVar(&query, "query", "", "Search text")
	searchCmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of articles to list")
	searchCmd.Flags().IntVar(&offset, "offset", 0, "Offset into the result list")

	articlesCmd.AddCommand(listCmd, deleteCmd, searchCmd)
	root.GetRoot().AddCommand(articlesCmd)
}

const articlesQuery = `
	query ($limit: Int, $offset: Int) {
		articles(limit: $limit, offset: $offset) {
			id
			title
			slug
			publishedAt
			author { username }
		}
	}
`

const searchQuery = `
	query ($query: String!, $limit: Int, $offset: Int) {
		searchArticles(query: $query, limit: $limit, offset: $offset) {
			id
			title
			slug
			publishedAt
			author { username }
		}
	}
`

const deleteMutation = `
	mutation ($id: ID!) {
		deleteArticle(id: $id)
	}
`

type articleRow struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	PublishedAt *string `json:"publishedAt"`
	Author      struct {
		Username string `json:"username"`
	} `json:"author"`
}

func renderArticles(articles []articleRow) {
	rows := make([][]interface{}, 0, len(articles))
	for _, a := range articles {
		published := ""
		if a.PublishedAt != nil {
			published = *a.PublishedAt
		}
		rows = append(rows, []interface{}{a.ID, a.Title, a.Slug, a.Author.Username, published})
	}
	output.RenderTable([]string{"ID", "Title", "Slug", "Author", "Published"}, rows)
}

// ==========================
// List Articles
// ==========================
func runList(limit, offset int) error {
	var out struct {
		Articles []articleRow `json:"articles"`
	}
	if err := client.Do(articlesQuery, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}, &out); err != nil {
		return err
	}
	renderArticles(out.Articles)
	return nil
}

// ==========================
// Search Articles
// ==========================
func runSearch(query string, limit, offset int) error {
	var out struct {
		SearchArticles []articleRow `json:"searchArticles"`
	}
	if err := client.Do(searchQuery, map[string]interface{}{
		"query":  query,
		"limit":  limit,
		"offset": offset,
	}, &out); err != nil {
		return err
	}
	renderArticles(out.SearchArticles)
	return nil
}

// ==========================
// Delete Article
// ==========================
func runDelete(articleID string) error {
	if err := client.Do(deleteMutation, map[string]interface{}{"id": articleID}, nil); err != nil {
		return err
	}
	fmt.Println("Article deleted.")
	return nil
}
