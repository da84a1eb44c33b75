package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vietdv277/stratus/internal/config"
)

var (
	// Global flags
	profile string
	region  string
)

var rootCmd = &cobra.Command{
	Use:   "stratus",
	Short: "Stratus - Provision AWS VPC network topologies",
	Long: `Stratus is a command-line tool that provisions a small, opinionated VPC
topology on AWS: one VPC, an internet gateway, a public and a private subnet
in a single availability zone, and a route table binding each subnet to its
intended reachability.

Provisioning:
  stratus vpc create --vpc-cidr 10.0.0.0/16 --vpc-name demo \
    --public-subnet-cidr 10.0.1.0/24 --private-subnet-cidr 10.0.2.0/24 \
    --availability-zone us-east-1a

Inspection:
  stratus vpc ls               # List VPCs
  stratus vpc describe         # Show VPC details with subnets
  stratus status               # Show account and auth status

Profiles:
  stratus profile              # Interactive profile selector
  stratus profile set prod     # Switch active AWS profile`,
}

// Execute runs the root command. An interrupt cancels the command context so
// a provisioning run aborts before starting its next step; steps already
// completed are never undone.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	//Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("STRATUS")
	viper.AutomaticEnv()

	// Priority for profile: --profile flag > ~/.stratus/config.yaml > AWS_PROFILE env
	if profile == "" {
		if saved := config.GetSavedProfile(); saved != "" {
			profile = saved
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Use AWS_REGION if --region not specified
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}
