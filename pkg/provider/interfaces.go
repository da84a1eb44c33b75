package provider

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotSupported     = errors.New("feature not supported by this provider")
	ErrNotFound         = errors.New("resource not found")
	ErrNotConfigured    = errors.New("provider not configured")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
)

// NetworkProvisioner defines the resource-creation operations the
// provisioning workflow consumes. Every call is a single synchronous
// round-trip to the provider except WaitVPCAvailable, which blocks until
// the VPC reaches the available state or the client's wait timeout expires.
//
// Any provider-side rejection (bad permissions, quota, throttling, invalid
// parameter) surfaces as an error; the workflow treats all of them the same.
type NetworkProvisioner interface {
	// CreateVPC creates a VPC from the given CIDR block
	CreateVPC(ctx context.Context, cidr string) (string, error)

	// WaitVPCAvailable blocks until the VPC reaches the available state
	WaitVPCAvailable(ctx context.Context, vpcID string) error

	// TagResource sets a tag on a resource
	TagResource(ctx context.Context, resourceID, key, value string) error

	// CreateInternetGateway creates an internet gateway
	CreateInternetGateway(ctx context.Context) (string, error)

	// AttachInternetGateway attaches an internet gateway to a VPC
	AttachInternetGateway(ctx context.Context, gatewayID, vpcID string) error

	// CreateSubnet carves a subnet out of a VPC in one availability zone
	CreateSubnet(ctx context.Context, vpcID, cidr, availabilityZone string) (string, error)

	// CreateRouteTable creates a route table in a VPC
	CreateRouteTable(ctx context.Context, vpcID string) (string, error)

	// AssociateRouteTable associates a route table with a subnet
	AssociateRouteTable(ctx context.Context, routeTableID, subnetID string) error

	// CreateDefaultRoute adds a 0.0.0.0/0 route through an internet gateway
	CreateDefaultRoute(ctx context.Context, routeTableID, gatewayID string) error
}
