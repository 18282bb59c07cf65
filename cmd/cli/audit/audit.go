package audit

import (
	"github.com/spf13/cobra"
	"github.com/technexus/blog-server/cmd/cli/client"
	"github.com/technexus/blog-server/cmd/cli/output"
	"github.com/technexus/blog-server/cmd/cli/root"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
		Long:  "List recent privileged actions. Requires an ADMIN login.",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(limit, offset)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to list")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Offset into the audit trail")

	auditCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(auditCmd)
}

const auditQuery = `
	query ($limit: Int, $offset: Int) {
		auditLog(limit: $limit, offset: $offset) {
			userId
			action
			resourceType
			resourceId
			details
			createdAt
		}
	}
`

// ==========================
// List Audit Entries
// ==========================
func runList(limit, offset int) error {
	var out struct {
		AuditLog []struct {
			UserID       string `json:"userId"`
			Action       string `json:"action"`
			ResourceType string `json:"resourceType"`
			ResourceID   string `json:"resourceId"`
			Details      string `json:"details"`
			CreatedAt    string `json:"createdAt"`
		} `json:"auditLog"`
	}
	if err := client.Do(auditQuery, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}, &out); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(out.AuditLog))
	for _, e := range out.AuditLog {
		rows = append(rows, []interface{}{e.CreatedAt, e.UserID, e.Action, e.ResourceType, e.ResourceID, e.Details})
	}
	output.RenderTable([]string{"Time", "User", "Action", "Type", "Resource", "Details"}, rows)
	return nil
}
