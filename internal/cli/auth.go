package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aoideee/library-catalog/internal/client"
)

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password, err := readPassword(fmt.Sprintf("Enter password for %s: ", username))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if password == "" {
			return fmt.Errorf("password cannot be empty")
		}

		name := registerName
		if name == "" {
			name = username
		}

		if err := apiClient().Register(name, username, password); err != nil {
			return err
		}

		cmd.Println("Account created. Run 'libcat login' to sign in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and store a bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password, err := readPassword("Enter your password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		tok, err := apiClient().Login(username, password)
		if err != nil {
			return err
		}

		if err := client.SaveToken(tok); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		cmd.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ClearToken(); err != nil {
			return err
		}
		cmd.Println("Logged out.")
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := apiClient().Users()
		if err != nil {
			return err
		}
		if len(users) == 0 {
			cmd.Println("No accounts registered.")
			return nil
		}

		cmd.Printf("%-5s %-25s %-25s %s\n", "ID", "Name", "Username", "Role")
		for _, u := range users {
			cmd.Printf("%-5d %-25s %-25s %s\n", u.ID, u.Name, u.Username, u.Role)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name (defaults to the username)")
}
