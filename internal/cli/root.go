// Package cli implements the libcat command tree. Commands are thin
// wrappers over internal/client; they read the persisted token, make one
// API call each, and print the result.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aoideee/library-catalog/internal/client"
)

var baseURL string

var rootCmd = &cobra.Command{
	Use:           "libcat",
	Short:         "Command-line client for the library catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", defaultBaseURL(), "Base URL of the catalog API server")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(booksCmd)
}

func defaultBaseURL() string {
	if v := os.Getenv("LIBCAT_URL"); v != "" {
		return v
	}
	return "http://localhost:4000"
}

// Execute runs the command tree and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

// apiClient builds a client carrying the persisted token, if any.
// Commands that require authentication get an ordinary request error from
// the server when the token is absent or expired, same as any other
// failed call.
func apiClient() *client.Client {
	tok, err := client.LoadToken()
	if err != nil {
		tok = ""
	}
	return client.New(baseURL, tok)
}
