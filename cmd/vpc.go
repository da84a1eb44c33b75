package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/provision"
	"github.com/vietdv277/stratus/internal/ui"
)

var vpcCmd = &cobra.Command{
	Use:   "vpc",
	Short: "Provision and inspect VPCs",
	Long:  `Provision a VPC topology with public and private subnets, or inspect existing VPCs and their subnets.`,
}

var (
	createVPCCIDR     string
	createVPCName     string
	createPublicCIDR  string
	createPrivateCIDR string
	createAZ          string
	createStrictCIDR  bool
)

var vpcCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a VPC with a public and a private subnet",
	Long: `Provision an isolated VPC topology: the VPC itself, an internet gateway,
one public and one private subnet in a single availability zone, and a route
table per subnet. The public route table gets a default route through the
gateway; the private route table gets none.

Steps run strictly in order and stop at the first failure. Nothing is rolled
back: resources created before the failure stay in place, and their IDs are
printed so they can be cleaned up or reused manually.

Examples:
  stratus vpc create --vpc-cidr 10.0.0.0/16 --vpc-name demo \
    --public-subnet-cidr 10.0.1.0/24 --private-subnet-cidr 10.0.2.0/24 \
    --availability-zone us-east-1a`,
	RunE: runVPCCreate,
}

var vpcLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all VPCs",
	Long: `List all VPCs with their CIDR, state, name, and default flag.

Examples:
  stratus vpc ls              # List all VPCs
  stratus vpc ls -p prod      # List VPCs using production profile`,
	RunE: runVPCList,
}

var vpcDescribeCmd = &cobra.Command{
	Use:   "describe [vpc-id]",
	Short: "Show detailed VPC information",
	Long: `Show detailed information about a VPC including its subnets.
If no VPC ID is provided, an interactive selector will be shown.

Examples:
  stratus vpc describe                  # Interactive VPC selector
  stratus vpc describe vpc-12345678     # Describe specific VPC`,
	RunE: runVPCDescribe,
}

var vpcSubnetsCmd = &cobra.Command{
	Use:   "subnets [vpc-id]",
	Short: "List subnets in a VPC",
	Long: `List all subnets in a VPC with their CIDR, AZ, and availability.
If no VPC ID is provided, an interactive selector will be shown.

Examples:
  stratus vpc subnets                   # Interactive VPC selector
  stratus vpc subnets vpc-12345678      # List subnets in specific VPC`,
	RunE: runVPCSubnets,
}

func init() {
	rootCmd.AddCommand(vpcCmd)

	vpcCmd.AddCommand(vpcCreateCmd)
	vpcCmd.AddCommand(vpcLsCmd)
	vpcCmd.AddCommand(vpcDescribeCmd)
	vpcCmd.AddCommand(vpcSubnetsCmd)

	f := vpcCreateCmd.Flags()
	f.StringVar(&createVPCCIDR, "vpc-cidr", "", "VPC CIDR block")
	f.StringVar(&createVPCName, "vpc-name", "", "VPC Name tag")
	f.StringVar(&createPublicCIDR, "public-subnet-cidr", "", "Public subnet CIDR block")
	f.StringVar(&createPrivateCIDR, "private-subnet-cidr", "", "Private subnet CIDR block")
	f.StringVar(&createAZ, "availability-zone", "", "Availability zone, e.g. us-east-1a")
	f.BoolVar(&createStrictCIDR, "strict-cidr", false, "Require subnet CIDRs to lie within the VPC CIDR")

	for _, flag := range []string{"vpc-cidr", "vpc-name", "public-subnet-cidr", "private-subnet-cidr", "availability-zone"} {
		_ = vpcCreateCmd.MarkFlagRequired(flag)
	}
}

// stepLabels maps executor step names to the resource names shown to users
var stepLabels = map[string]string{
	provision.StepCreateVPC:             "VPC",
	provision.StepCreateInternetGateway: "internet gateway",
	provision.StepCreatePublicSubnet:    "public subnet",
	provision.StepCreatePrivateSubnet:   "private subnet",
	provision.StepPublicRouteTable:      "public route table",
	provision.StepPrivateRouteTable:     "private route table",
}

func runVPCCreate(cmd *cobra.Command, args []string) error {
	var planOpts []provision.PlanOption
	if createStrictCIDR {
		planOpts = append(planOpts, provision.WithSubnetContainment())
	}

	// Validation happens entirely locally; no client exists yet when it fails
	plan, err := provision.BuildPlan(provision.PlanInput{
		VPCCIDR:           createVPCCIDR,
		VPCName:           createVPCName,
		PublicSubnetCIDR:  createPublicCIDR,
		PrivateSubnetCIDR: createPrivateCIDR,
		AvailabilityZone:  createAZ,
	}, planOpts...)
	if err != nil {
		return err
	}

	client, err := aws.NewClient(
		cmd.Context(),
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	executor := provision.NewExecutor(client, provision.WithObserver(printStepResult))

	result, err := executor.Execute(cmd.Context(), plan)
	if err != nil {
		if len(result.Completed) > 0 {
			fmt.Println()
			fmt.Println("Resources created before the failure (not rolled back):")
			for _, h := range result.Completed {
				fmt.Printf("  %-18s %s\n", h.Kind, ui.IDStyle.Render(h.ID))
			}
		}
		return err
	}

	fmt.Println()
	fmt.Println(ui.RunningStyle.Render("✓") + " All resources created successfully")
	return nil
}

func printStepResult(sr provision.StepResult) {
	fmt.Printf("%s Created %s: %s\n",
		ui.RunningStyle.Render("✓"), stepLabels[sr.Step], ui.IDStyle.Render(sr.Handle.ID))
}

func runVPCList(cmd *cobra.Command, args []string) error {
	client, err := aws.NewClient(
		cmd.Context(),
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	vpcs, err := client.ListVPCs()
	if err != nil {
		return fmt.Errorf("failed to list VPCs: %w", err)
	}

	if len(vpcs) == 0 {
		fmt.Println("No VPCs found")
		return nil
	}

	ui.PrintVPCTable(vpcs)
	return nil
}

func runVPCDescribe(cmd *cobra.Command, args []string) error {
	client, err := aws.NewClient(
		cmd.Context(),
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	var vpcID string

	if len(args) > 0 {
		vpcID = args[0]
	} else {
		// Interactive selector
		vpcs, err := client.ListVPCs()
		if err != nil {
			return fmt.Errorf("failed to list VPCs: %w", err)
		}

		selected, err := ui.SelectVPC(vpcs)
		if err != nil {
			return err
		}
		vpcID = selected.ID
	}

	// Get VPC details
	vpc, err := client.DescribeVPC(vpcID)
	if err != nil {
		return fmt.Errorf("failed to describe VPC: %w", err)
	}

	if vpc == nil {
		return fmt.Errorf("VPC %s not found", vpcID)
	}

	// Print VPC details
	fmt.Println()
	fmt.Printf("VPC: %s\n", vpc.ID)
	fmt.Printf("  Name:     %s\n", vpc.Name)
	fmt.Printf("  CIDR:     %s\n", vpc.CIDR)
	fmt.Printf("  State:    %s\n", vpc.State)
	fmt.Printf("  Default:  %v\n", vpc.IsDefault)
	fmt.Printf("  Owner:    %s\n", vpc.OwnerID)
	fmt.Println()

	// Get and print subnets
	subnets, err := client.ListSubnets(vpcID)
	if err != nil {
		return fmt.Errorf("failed to list subnets: %w", err)
	}

	if len(subnets) > 0 {
		fmt.Println("Subnets:")
		ui.PrintSubnetTable(subnets)
	} else {
		fmt.Println("No subnets found in this VPC")
	}

	return nil
}

func runVPCSubnets(cmd *cobra.Command, args []string) error {
	client, err := aws.NewClient(
		cmd.Context(),
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	var vpcID string

	if len(args) > 0 {
		vpcID = args[0]
	} else {
		// Interactive selector
		vpcs, err := client.ListVPCs()
		if err != nil {
			return fmt.Errorf("failed to list VPCs: %w", err)
		}

		selected, err := ui.SelectVPC(vpcs)
		if err != nil {
			return err
		}
		vpcID = selected.ID
	}

	// Get subnets
	subnets, err := client.ListSubnets(vpcID)
	if err != nil {
		return fmt.Errorf("failed to list subnets: %w", err)
	}

	if len(subnets) == 0 {
		fmt.Println("No subnets found in this VPC")
		return nil
	}

	ui.PrintSubnetTable(subnets)
	return nil
}
