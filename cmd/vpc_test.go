package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/vietdv277/stratus/internal/provision"
)

func TestVPCCmd_Subcommands(t *testing.T) {
	subcommands := make(map[string]bool)
	for _, sub := range vpcCmd.Commands() {
		subcommands[sub.Use] = true
	}

	expectedCommands := []string{
		"create",
		"ls",
		"describe [vpc-id]",
		"subnets [vpc-id]",
	}

	for _, expected := range expectedCommands {
		if !subcommands[expected] {
			t.Errorf("expected subcommand '%s' not found", expected)
		}
	}
}

func TestVPCCreateCmd_Flags(t *testing.T) {
	requiredFlags := []string{
		"vpc-cidr",
		"vpc-name",
		"public-subnet-cidr",
		"private-subnet-cidr",
		"availability-zone",
	}

	for _, flagName := range requiredFlags {
		flag := vpcCreateCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected --%s flag", flagName)
			continue
		}
		if len(flag.Annotations[cobra.BashCompOneRequiredFlag]) == 0 {
			t.Errorf("expected --%s to be required", flagName)
		}
	}

	// Strictness is opt-in
	if vpcCreateCmd.Flags().Lookup("strict-cidr") == nil {
		t.Error("expected --strict-cidr flag")
	}
}

func TestStepLabels_CoverAllSteps(t *testing.T) {
	steps := []string{
		provision.StepCreateVPC,
		provision.StepCreateInternetGateway,
		provision.StepCreatePublicSubnet,
		provision.StepCreatePrivateSubnet,
		provision.StepPublicRouteTable,
		provision.StepPrivateRouteTable,
	}

	for _, step := range steps {
		if stepLabels[step] == "" {
			t.Errorf("no label for step %q", step)
		}
	}
}
