package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// The methods in this file implement provider.NetworkProvisioner, the
// resource-creation surface consumed by the provisioning executor.

// CreateVPC creates a VPC from the given CIDR block
func (c *Client) CreateVPC(ctx context.Context, cidr string) (string, error) {
	output, err := c.EC2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock: aws.String(cidr),
	})
	if err != nil {
		return "", err
	}
	return deref(output.Vpc.VpcId), nil
}

// WaitVPCAvailable blocks until the VPC reaches the available state or the
// client's wait timeout expires
func (c *Client) WaitVPCAvailable(ctx context.Context, vpcID string) error {
	waiter := ec2.NewVpcAvailableWaiter(c.EC2)
	err := waiter.Wait(ctx, &ec2.DescribeVpcsInput{
		VpcIds: []string{vpcID},
	}, c.waitTimeout)
	if err != nil {
		return fmt.Errorf("waiting for VPC %s to become available: %w", vpcID, err)
	}
	return nil
}

// TagResource sets a single tag on an EC2 resource
func (c *Client) TagResource(ctx context.Context, resourceID, key, value string) error {
	_, err := c.EC2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags: []ec2types.Tag{
			{Key: aws.String(key), Value: aws.String(value)},
		},
	})
	return err
}

// CreateInternetGateway creates an internet gateway
func (c *Client) CreateInternetGateway(ctx context.Context) (string, error) {
	output, err := c.EC2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{})
	if err != nil {
		return "", err
	}
	return deref(output.InternetGateway.InternetGatewayId), nil
}

// AttachInternetGateway attaches an internet gateway to a VPC
func (c *Client) AttachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	_, err := c.EC2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
	})
	return err
}

// CreateSubnet creates a subnet in the VPC bound to one availability zone
func (c *Client) CreateSubnet(ctx context.Context, vpcID, cidr, availabilityZone string) (string, error) {
	output, err := c.EC2.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:            aws.String(vpcID),
		CidrBlock:        aws.String(cidr),
		AvailabilityZone: aws.String(availabilityZone),
	})
	if err != nil {
		return "", err
	}
	return deref(output.Subnet.SubnetId), nil
}

// CreateRouteTable creates a route table in the VPC
func (c *Client) CreateRouteTable(ctx context.Context, vpcID string) (string, error) {
	output, err := c.EC2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
		VpcId: aws.String(vpcID),
	})
	if err != nil {
		return "", err
	}
	return deref(output.RouteTable.RouteTableId), nil
}

// AssociateRouteTable associates a route table with a subnet
func (c *Client) AssociateRouteTable(ctx context.Context, routeTableID, subnetID string) error {
	_, err := c.EC2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
		RouteTableId: aws.String(routeTableID),
		SubnetId:     aws.String(subnetID),
	})
	return err
}

// CreateDefaultRoute adds a 0.0.0.0/0 route through the internet gateway
func (c *Client) CreateDefaultRoute(ctx context.Context, routeTableID, gatewayID string) error {
	_, err := c.EC2.CreateRoute(ctx, &ec2.CreateRouteInput{
		RouteTableId:         aws.String(routeTableID),
		DestinationCidrBlock: aws.String("0.0.0.0/0"),
		GatewayId:            aws.String(gatewayID),
	})
	return err
}
