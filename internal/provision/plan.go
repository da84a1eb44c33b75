// Package provision plans and executes the VPC topology provisioning
// workflow: one VPC, an internet gateway, a public and a private subnet,
// and one route table per subnet.
//
// Planning is pure and fails fast on bad input; execution walks the fixed
// step order against a provider.NetworkProvisioner, threading each created
// resource ID into the steps that depend on it. Execution stops at the
// first failure and never rolls back.
package provision

import (
	"fmt"
	"net/netip"
	"strings"
)

// AddressBlock is a validated IPv4 CIDR block in canonical form.
type AddressBlock struct {
	prefix netip.Prefix
}

// String returns the block in canonical CIDR notation
func (b AddressBlock) String() string {
	return b.prefix.String()
}

// Bits returns the prefix length
func (b AddressBlock) Bits() int {
	return b.prefix.Bits()
}

// Contains reports whether other lies entirely within b's address space
func (b AddressBlock) Contains(other AddressBlock) bool {
	return other.prefix.Bits() >= b.prefix.Bits() && b.prefix.Contains(other.prefix.Addr())
}

// ValidateAddressBlock parses raw as an IPv4 CIDR block: four octets in
// [0,255] and a prefix length in [0,32]. Anything else fails with an
// *InvalidInputError. No network calls are made.
//
// The returned block is masked to its network address, so validating a
// block's own String output yields an equal block.
func ValidateAddressBlock(raw string) (AddressBlock, error) {
	prefix, err := netip.ParsePrefix(raw)
	if err != nil || !prefix.Addr().Is4() {
		return AddressBlock{}, &InvalidInputError{
			Issues: []FieldIssue{{Field: "cidr", Detail: fmt.Sprintf("%q is not a valid IPv4 CIDR block", raw)}},
		}
	}
	return AddressBlock{prefix: prefix.Masked()}, nil
}

// PlanInput carries the raw user-supplied parameters for one topology.
type PlanInput struct {
	VPCCIDR           string
	VPCName           string
	PublicSubnetCIDR  string
	PrivateSubnetCIDR string
	AvailabilityZone  string
}

// Plan is the validated, immutable provisioning plan. Its step order is
// fixed: VPC, internet gateway, public subnet, private subnet, public route
// table, private route table.
type Plan struct {
	VPCCIDR           AddressBlock
	VPCName           string
	PublicSubnetCIDR  AddressBlock
	PrivateSubnetCIDR AddressBlock
	AvailabilityZone  string
}

// PlanOption customizes plan validation
type PlanOption func(*planConfig)

type planConfig struct {
	subnetContainment bool
}

// WithSubnetContainment additionally requires both subnet blocks to lie
// within the VPC block. AWS enforces this remotely anyway; enabling the
// check catches the mistake before anything is created.
func WithSubnetContainment() PlanOption {
	return func(c *planConfig) {
		c.subnetContainment = true
	}
}

// BuildPlan validates all inputs and returns the provisioning plan. All
// failing fields are reported together in a single *InvalidInputError; no
// partial plan is ever returned and no remote call is made.
func BuildPlan(in PlanInput, opts ...PlanOption) (*Plan, error) {
	var cfg planConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var issues []FieldIssue

	block := func(field, raw string) AddressBlock {
		b, err := ValidateAddressBlock(raw)
		if err != nil {
			issues = append(issues, FieldIssue{
				Field:  field,
				Detail: fmt.Sprintf("%q is not a valid IPv4 CIDR block", raw),
			})
		}
		return b
	}

	vpc := block("vpc-cidr", in.VPCCIDR)
	public := block("public-subnet-cidr", in.PublicSubnetCIDR)
	private := block("private-subnet-cidr", in.PrivateSubnetCIDR)

	if strings.TrimSpace(in.VPCName) == "" {
		issues = append(issues, FieldIssue{Field: "vpc-name", Detail: "must not be empty"})
	}
	if strings.TrimSpace(in.AvailabilityZone) == "" {
		issues = append(issues, FieldIssue{Field: "availability-zone", Detail: "must not be empty"})
	}

	// Containment only makes sense once all three blocks parsed
	if cfg.subnetContainment && len(issues) == 0 {
		if !vpc.Contains(public) {
			issues = append(issues, FieldIssue{
				Field:  "public-subnet-cidr",
				Detail: fmt.Sprintf("%s is not within the VPC block %s", public, vpc),
			})
		}
		if !vpc.Contains(private) {
			issues = append(issues, FieldIssue{
				Field:  "private-subnet-cidr",
				Detail: fmt.Sprintf("%s is not within the VPC block %s", private, vpc),
			})
		}
	}

	if len(issues) > 0 {
		return nil, &InvalidInputError{Issues: issues}
	}

	return &Plan{
		VPCCIDR:           vpc,
		VPCName:           in.VPCName,
		PublicSubnetCIDR:  public,
		PrivateSubnetCIDR: private,
		AvailabilityZone:  in.AvailabilityZone,
	}, nil
}
