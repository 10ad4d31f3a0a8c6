package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bloghub/cmd/blogctl/command/client"
	"bloghub/cmd/blogctl/credentials"
	"bloghub/internal/microservices/http-api/dto"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the BlogHub API server. Supports register, login, logout and whoami.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new BlogHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).Register(ctx, &req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if err := credentials.Store(&credentials.StoredCredentials{Token: resp.Token, Username: resp.Username}); err != nil {
			return fmt.Errorf("registered, but could not store the session: %w", err)
		}
		fmt.Printf("✓ Registered and logged in as %s (id %d)\n", resp.Username, resp.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your BlogHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).Login(ctx, &req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		expiresAt := time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
		if err := credentials.Store(&credentials.StoredCredentials{
			Token:     resp.Token,
			Username:  resp.Username,
			ExpiresAt: expiresAt.Unix(),
		}); err != nil {
			return fmt.Errorf("could not store the session: %w", err)
		}

		fmt.Println("✓ Successfully logged in!")
		fmt.Printf("Session expires at %s\n", expiresAt.Format(time.Kitchen))
		return nil
	},
}

// logout is client side only: tokens stay valid until they expire.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credentials.Delete(); err != nil {
			return err
		}
		fmt.Println("✓ Successfully logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		user, err := c.Self(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringP("username", "u", "", "account username")
		c.Flags().StringP("password", "p", "", "account password")
		c.MarkFlagRequired("username")
		c.MarkFlagRequired("password")
	}
}
