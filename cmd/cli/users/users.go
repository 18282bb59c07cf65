package users

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
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
		Long:  "List accounts and change roles. Requires an ADMIN login.",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(limit, offset)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of users to list")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Offset into the user list")

	var userID, role string
	setRoleCmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change a user's role",
		Long:  "Set a user's role to one of USER, CONTRIBUTOR, EDITOR, ADMIN.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || role == "" {
				return fmt.Errorf("--id and --role are required")
			}
			return runSetRole(userID, role)
		},
	}
	setRoleCmd.Flags().StringVar(&userID, "id", "", "User ID")
	setRoleCmd.Flags().StringVar(&role, "role", "", "New role")

	usersCmd.AddCommand(listCmd, setRoleCmd)
	root.GetRoot().AddCommand(usersCmd)
}

const usersQuery = `
	query ($limit: Int, $offset: Int) {
		users(limit: $limit, offset: $offset) {
			id
			email
			username
			role
			createdAt
		}
	}
`

const setRoleMutation = `
	mutation ($userId: ID!, $role: UserRole!) {
		updateUserRole(userId: $userId, role: $role) {
			id
			username
			role
		}
	}
`

// ==========================
// List Users
// ==========================
func runList(limit, offset int) error {
	var out struct {
		Users []struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			Username  string `json:"username"`
			Role      string `json:"role"`
			CreatedAt string `json:"createdAt"`
		} `json:"users"`
	}
	if err := client.Do(usersQuery, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}, &out); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(out.Users))
	for _, u := range out.Users {
		rows = append(rows, []interface{}{u.ID, u.Email, u.Username, u.Role, u.CreatedAt})
	}
	output.RenderTable([]string{"ID", "Email", "Username", "Role", "Created"}, rows)
	return nil
}

// ==========================
// Set Role
// ==========================
func runSetRole(userID, role string) error {
	var out struct {
		UpdateUserRole struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"updateUserRole"`
	}
	if err := client.Do(setRoleMutation, map[string]interface{}{
		"userId": userID,
		"role":   role,
	}, &out); err != nil {
		return err
	}

	fmt.Printf("User %s is now %s.\n", out.UpdateUserRole.Username, out.UpdateUserRole.Role)
	return nil
}
