package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zakaryaxali/geoffray-sub000/internal/auth"
)

// newLoginCommand creates the login subcommand
func newLoginCommand(container *Container) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your Geoffray account",
		Long:  `Authenticate with the Geoffray API and store the session tokens locally.`,
		Example: `  geoffray login --email alice@example.com --password secret
  geoffray login`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				formEmail, formPassword, err := runLoginForm(email)
				if err != nil {
					return err
				}
				email, password = formEmail, formPassword
			}

			ctx := context.Background()
			if _, err := container.Auth.Login(ctx, email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Printf("✅ Logged in as %s\n", email)
			if expiry, ok := container.Auth.ExpiresAt(); ok {
				fmt.Printf("🔑 Session valid until %s\n", expiry.Local().Format(time.RFC1123))
			} else {
				fmt.Printf("🔑 Session token does not expire\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

// newRegisterCommand creates the register subcommand
func newRegisterCommand(container *Container) *cobra.Command {
	var username, email, password string
	var firstName, lastName, phone, countryCode string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new Geoffray account",
		Long: `Register a new account with the Geoffray API.

Registration does not log you in. Run 'geoffray login' afterwards to
start a session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("--username, --email and --password are required")
			}

			ctx := context.Background()
			err := container.Auth.Register(ctx, auth.RegisterRequest{
				Username:    username,
				Email:       email,
				Password:    password,
				FirstName:   firstName,
				LastName:    lastName,
				PhoneNumber: phone,
				CountryCode: countryCode,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("✅ Account created for %s\n", email)
			fmt.Printf("   Run 'geoffray login --email %s' to start a session\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (optional)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (optional)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (optional)")
	cmd.Flags().StringVar(&countryCode, "country-code", "", "Phone country code, e.g. 33 or +33 (optional)")

	return cmd
}

// newLogoutCommand creates the logout subcommand
func newLogoutCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long:  `Notify the server and remove the locally stored session tokens. Local tokens are cleared even when the server is unreachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Auth.Logout(context.Background())
			fmt.Printf("✅ Logged out\n")
			return nil
		},
	}
}

// newWhoamiCommand creates the whoami subcommand
func newWhoamiCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := container.Auth.CurrentUserID()
			if err != nil {
				return fmt.Errorf("no active session: %w", err)
			}

			fmt.Printf("🆔 User ID: %s\n", userID)

			profile, err := container.Profile.Get(context.Background())
			if err != nil {
				// The ID alone is still useful when the profile endpoint fails.
				container.Logger.Debug("profile lookup failed", zap.Error(err))
				return nil
			}
			if name := strings.TrimSpace(profile.FirstName + " " + profile.LastName); name != "" {
				fmt.Printf("👤 Name: %s\n", name)
			}
			fmt.Printf("📧 Email: %s\n", profile.Email)
			return nil
		},
	}
}

// newStatusCommand creates the status subcommand
func newStatusCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("🌐 API Endpoint: %s\n", container.Config.APIBaseURL)

			if !container.Auth.IsAuthenticated() {
				fmt.Printf("❌ Not logged in\n")
				fmt.Printf("   Run 'geoffray login' to start a session\n")
				return nil
			}

			if container.Auth.IsExpired() {
				fmt.Printf("⏰ Session expired (will refresh on next request)\n")
			} else if expiry, ok := container.Auth.ExpiresAt(); ok {
				fmt.Printf("🔑 Session valid until %s\n", expiry.Local().Format(time.RFC1123))
			} else {
				fmt.Printf("🔑 Session active (no expiry)\n")
			}

			if userID, err := container.Auth.CurrentUserID(); err == nil {
				fmt.Printf("🆔 User ID: %s\n", userID)
			}
			return nil
		},
	}
}
