package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account and authentication status",
	Long: `Verify AWS authentication and display the caller identity that
provisioning commands will run as. Useful as a preflight check before
creating resources.

Examples:
  stratus status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if GetProfile() != "" {
		fmt.Printf("Profile:  %s\n", ui.NameStyle.Render(GetProfile()))
	} else {
		fmt.Println("Profile:  " + ui.MutedStyle.Render("(default)"))
	}
	if GetRegion() != "" {
		fmt.Printf("Region:   %s\n", GetRegion())
	}
	fmt.Println()

	// Try to get caller identity
	fmt.Print("Auth:     ")
	identity, err := aws.GetCallerIdentity(GetProfile(), GetRegion())
	if err != nil {
		fmt.Println(ui.StoppedStyle.Render("✗ Not authenticated"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		fmt.Println()
		fmt.Println("To authenticate:")
		fmt.Printf("  aws sso login --profile %s\n", GetProfile())
		return nil
	}

	fmt.Println(ui.RunningStyle.Render("✓ Authenticated"))
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}

	return nil
}
