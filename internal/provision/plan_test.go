package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddressBlock_Valid(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10.0.0.0/16", "10.0.0.0/16"},
		{"192.168.1.0/24", "192.168.1.0/24"},
		{"0.0.0.0/0", "0.0.0.0/0"},
		{"255.255.255.255/32", "255.255.255.255/32"},
		// Host bits are masked off to the network address
		{"10.0.1.5/24", "10.0.1.0/24"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			block, err := ValidateAddressBlock(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, block.String())
		})
	}
}

func TestValidateAddressBlock_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10.0.0.0",         // missing prefix
		"10.0.0.0/33",      // prefix too long
		"10.0.0.0/-1",      // negative prefix
		"999.0.0.0/24",     // octet out of range
		"10.0.0.256/24",    // octet out of range
		"10.0.0/24",        // too few octets
		"10.0.0.0.0/24",    // too many octets
		"a.b.c.d/8",        // non-numeric
		"10.0.0.0/x",       // non-numeric prefix
		"10.0.0.0/16/8",    // trailing garbage
		"2001:db8::/32",    // IPv6
		"::ffff:10.0.0.0/24", // IPv4-mapped IPv6
		" 10.0.0.0/16",     // leading whitespace
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := ValidateAddressBlock(raw)
			require.Error(t, err)

			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestValidateAddressBlock_Idempotent(t *testing.T) {
	for _, raw := range []string{"10.0.0.0/16", "10.0.1.7/24", "172.16.0.0/12"} {
		first, err := ValidateAddressBlock(raw)
		require.NoError(t, err)

		second, err := ValidateAddressBlock(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestAddressBlock_Contains(t *testing.T) {
	vpc, err := ValidateAddressBlock("10.0.0.0/16")
	require.NoError(t, err)

	inside, _ := ValidateAddressBlock("10.0.1.0/24")
	outside, _ := ValidateAddressBlock("10.1.0.0/24")
	wider, _ := ValidateAddressBlock("10.0.0.0/8")

	assert.True(t, vpc.Contains(inside))
	assert.True(t, vpc.Contains(vpc))
	assert.False(t, vpc.Contains(outside))
	assert.False(t, vpc.Contains(wider))
}

func validInput() PlanInput {
	return PlanInput{
		VPCCIDR:           "10.0.0.0/16",
		VPCName:           "demo",
		PublicSubnetCIDR:  "10.0.1.0/24",
		PrivateSubnetCIDR: "10.0.2.0/24",
		AvailabilityZone:  "us-east-1a",
	}
}

func TestBuildPlan_Valid(t *testing.T) {
	plan, err := BuildPlan(validInput())
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.0/16", plan.VPCCIDR.String())
	assert.Equal(t, "demo", plan.VPCName)
	assert.Equal(t, "10.0.1.0/24", plan.PublicSubnetCIDR.String())
	assert.Equal(t, "10.0.2.0/24", plan.PrivateSubnetCIDR.String())
	assert.Equal(t, "us-east-1a", plan.AvailabilityZone)
}

func TestBuildPlan_InvalidCIDR(t *testing.T) {
	in := validInput()
	in.PublicSubnetCIDR = "999.0.0.0/24"

	plan, err := BuildPlan(in)
	assert.Nil(t, plan)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Issues, 1)
	assert.Equal(t, "public-subnet-cidr", invalid.Issues[0].Field)
}

func TestBuildPlan_AggregatesAllFailures(t *testing.T) {
	in := PlanInput{
		VPCCIDR:           "not-a-cidr",
		VPCName:           "",
		PublicSubnetCIDR:  "10.0.1.0/99",
		PrivateSubnetCIDR: "10.0.2.0/24",
		AvailabilityZone:  "   ",
	}

	plan, err := BuildPlan(in)
	assert.Nil(t, plan)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)

	fields := make([]string, 0, len(invalid.Issues))
	for _, issue := range invalid.Issues {
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{"vpc-cidr", "public-subnet-cidr", "vpc-name", "availability-zone"}, fields)
}

func TestBuildPlan_SubnetContainment(t *testing.T) {
	// Off by default: out-of-VPC subnets are deferred to the provider
	in := validInput()
	in.PrivateSubnetCIDR = "192.168.0.0/24"

	_, err := BuildPlan(in)
	assert.NoError(t, err)

	// Opt-in: the same input fails locally
	plan, err := BuildPlan(in, WithSubnetContainment())
	assert.Nil(t, plan)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Issues, 1)
	assert.Equal(t, "private-subnet-cidr", invalid.Issues[0].Field)

	_, err = BuildPlan(validInput(), WithSubnetContainment())
	assert.NoError(t, err)
}

func TestInvalidInputError_Message(t *testing.T) {
	err := &InvalidInputError{Issues: []FieldIssue{
		{Field: "vpc-cidr", Detail: `"x" is not a valid IPv4 CIDR block`},
		{Field: "vpc-name", Detail: "must not be empty"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "vpc-cidr")
	assert.Contains(t, msg, "vpc-name")
}

func TestRemoteOperationError_Unwrap(t *testing.T) {
	cause := errors.New("throttled")
	err := &RemoteOperationError{Step: StepCreateVPC, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), StepCreateVPC)
}
