package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zakaryaxali/geoffray-sub000/internal/api"
)

// newProfileCommand creates the profile subcommand tree
func newProfileCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update your profile",
	}

	cmd.AddCommand(newProfileShowCommand(container))
	cmd.AddCommand(newProfileUpdateCommand(container))

	return cmd
}

// newProfileShowCommand creates the profile show subcommand
func newProfileShowCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := container.Profile.Get(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("👤 %s %s\n", profile.FirstName, profile.LastName)
			fmt.Printf("📧 %s\n", profile.Email)
			if profile.PhoneNumber != "" {
				fmt.Printf("📱 %s %s\n", profile.CountryCode, profile.PhoneNumber)
			}
			return nil
		},
	}
}

// newProfileUpdateCommand creates the profile update subcommand
func newProfileUpdateCommand(container *Container) *cobra.Command {
	var profile api.Profile

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := container.Profile.Update(context.Background(), profile)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Profile updated\n")
			fmt.Printf("👤 %s %s <%s>\n", updated.FirstName, updated.LastName, updated.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&profile.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&profile.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&profile.CountryCode, "country-code", "", "Phone country code")
	cmd.Flags().StringVar(&profile.ProfilePicture, "picture", "", "Profile picture URL")

	return cmd
}
