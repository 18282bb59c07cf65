package auth

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/technexus/blog-server/cmd/cli/client"
	"github.com/technexus/blog-server/cmd/cli/config"
	"github.com/technexus/blog-server/cmd/cli/root"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the blog API",
		Long:  "Authenticate against the blog API and store a JWT token for subsequent CLI commands.",
		RunE:  runLogin,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Long:  "Remove the locally saved JWT token.",
		RunE:  runLogout,
	}

	root.GetRoot().AddCommand(loginCmd, logoutCmd)
}

const loginMutation = `
	mutation ($email: String!, $password: String!) {
		login(email: $email, password: $password) {
			token
			user { id username role }
		}
	}
`

// ==========================
// Login
// ==========================
func runLogin(cmd *cobra.Command, args []string) error {
	var email, password string
	fmt.Print("Email: ")
	fmt.Scanln(&email)
	fmt.Print("Password: ")
	fmt.Scanln(&password)

	var out struct {
		Login struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		} `json:"login"`
	}
	if err := client.Do(loginMutation, map[string]interface{}{
		"email":    email,
		"password": password,
	}, &out); err != nil {
		return err
	}
	if out.Login.Token == "" {
		return fmt.Errorf("login succeeded but no token returned")
	}

	if err := config.SaveToken(out.Login.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("Logged in as %s (%s). Token stored locally.\n", out.Login.User.Username, out.Login.User.Role)
	return nil
}

// ==========================
// Logout
// ==========================
func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.RemoveToken(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
