package command

// root.go defines the blogctl root command and its global flags.

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bloghub/cmd/blogctl/command/client"
	"bloghub/cmd/blogctl/credentials"
)

var apiURL string // global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "blogctl - BlogHub command line interface",
	Long: `blogctl manages a BlogHub deployment and talks to its API.

Admin commands (migrate, seed, token) connect to the database named by
DATABASE_URL. Client commands (auth, posts, comments) call the API server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")

	rootCmd.AddCommand(migrateCmd, seedCmd, tokenCmd)
	rootCmd.AddCommand(authCmd, postCmd, commentCmd)
}

// requestContext bounds a single CLI round trip.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 15*time.Second)
}

// GetAuthenticatedClient returns a client carrying the stored session token.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.Token)
	return c, nil
}

// optionalClient attaches the session token when there is one.
func optionalClient() *client.HTTPClient {
	if c, err := GetAuthenticatedClient(); err == nil {
		return c
	}
	return client.NewHTTPClient(apiURL)
}
