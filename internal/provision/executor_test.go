package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records every provisioner call and can be told to fail the Nth
// invocation of one method, which maps onto failing a chosen workflow step.
type fakeClient struct {
	calls []string
	seen  map[string]int

	failOn    string // method name to fail, "" succeeds everything
	failOnNth int    // which invocation of failOn fails (1-based, default 1)
	err       error

	subnetSeq int
	tableSeq  int

	tags          map[string]map[string]string
	attachments   map[string]string // gatewayID -> vpcID
	associations  map[string]string // routeTableID -> subnetID
	defaultRoutes map[string]string // routeTableID -> gatewayID
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		seen:          map[string]int{},
		err:           errors.New("api rejected the call"),
		tags:          map[string]map[string]string{},
		attachments:   map[string]string{},
		associations:  map[string]string{},
		defaultRoutes: map[string]string{},
	}
}

func (f *fakeClient) called(name string, args ...string) error {
	f.calls = append(f.calls, name+"("+strings.Join(args, ",")+")")
	f.seen[name]++
	if name == f.failOn {
		nth := f.failOnNth
		if nth == 0 {
			nth = 1
		}
		if f.seen[name] == nth {
			return f.err
		}
	}
	return nil
}

func (f *fakeClient) CreateVPC(_ context.Context, cidr string) (string, error) {
	if err := f.called("CreateVPC", cidr); err != nil {
		return "", err
	}
	return "vpc-123", nil
}

func (f *fakeClient) WaitVPCAvailable(_ context.Context, vpcID string) error {
	return f.called("WaitVPCAvailable", vpcID)
}

func (f *fakeClient) TagResource(_ context.Context, resourceID, key, value string) error {
	if err := f.called("TagResource", resourceID, key, value); err != nil {
		return err
	}
	if f.tags[resourceID] == nil {
		f.tags[resourceID] = map[string]string{}
	}
	f.tags[resourceID][key] = value
	return nil
}

func (f *fakeClient) CreateInternetGateway(_ context.Context) (string, error) {
	if err := f.called("CreateInternetGateway"); err != nil {
		return "", err
	}
	return "igw-123", nil
}

func (f *fakeClient) AttachInternetGateway(_ context.Context, gatewayID, vpcID string) error {
	if err := f.called("AttachInternetGateway", gatewayID, vpcID); err != nil {
		return err
	}
	f.attachments[gatewayID] = vpcID
	return nil
}

func (f *fakeClient) CreateSubnet(_ context.Context, vpcID, cidr, az string) (string, error) {
	if err := f.called("CreateSubnet", vpcID, cidr, az); err != nil {
		return "", err
	}
	f.subnetSeq++
	return fmt.Sprintf("subnet-%d", f.subnetSeq), nil
}

func (f *fakeClient) CreateRouteTable(_ context.Context, vpcID string) (string, error) {
	if err := f.called("CreateRouteTable", vpcID); err != nil {
		return "", err
	}
	f.tableSeq++
	return fmt.Sprintf("rtb-%d", f.tableSeq), nil
}

func (f *fakeClient) AssociateRouteTable(_ context.Context, routeTableID, subnetID string) error {
	if err := f.called("AssociateRouteTable", routeTableID, subnetID); err != nil {
		return err
	}
	f.associations[routeTableID] = subnetID
	return nil
}

func (f *fakeClient) CreateDefaultRoute(_ context.Context, routeTableID, gatewayID string) error {
	if err := f.called("CreateDefaultRoute", routeTableID, gatewayID); err != nil {
		return err
	}
	f.defaultRoutes[routeTableID] = gatewayID
	return nil
}

func mustPlan(t *testing.T) *Plan {
	t.Helper()
	plan, err := BuildPlan(validInput())
	require.NoError(t, err)
	return plan
}

func TestExecute_Success(t *testing.T) {
	client := newFakeClient()

	result, err := NewExecutor(client).Execute(context.Background(), mustPlan(t))
	require.NoError(t, err)
	require.True(t, result.OK())

	assert.Equal(t, "vpc-123", result.VPC.ID)
	assert.Equal(t, "igw-123", result.InternetGateway.ID)
	assert.Equal(t, "subnet-1", result.PublicSubnet.ID)
	assert.Equal(t, "subnet-2", result.PrivateSubnet.ID)
	assert.Equal(t, "rtb-1", result.PublicRouteTable.ID)
	assert.Equal(t, "rtb-2", result.PrivateRouteTable.ID)
	assert.Len(t, result.Completed, 6)

	// The full call sequence is fixed and total
	assert.Equal(t, []string{
		"CreateVPC(10.0.0.0/16)",
		"WaitVPCAvailable(vpc-123)",
		"TagResource(vpc-123,Name,demo)",
		"CreateInternetGateway()",
		"AttachInternetGateway(igw-123,vpc-123)",
		"CreateSubnet(vpc-123,10.0.1.0/24,us-east-1a)",
		"TagResource(subnet-1,Name,PublicSubnet)",
		"CreateSubnet(vpc-123,10.0.2.0/24,us-east-1a)",
		"TagResource(subnet-2,Name,PrivateSubnet)",
		"CreateRouteTable(vpc-123)",
		"TagResource(rtb-1,Name,PublicRouteTable)",
		"AssociateRouteTable(rtb-1,subnet-1)",
		"CreateDefaultRoute(rtb-1,igw-123)",
		"CreateRouteTable(vpc-123)",
		"TagResource(rtb-2,Name,PrivateRouteTable)",
		"AssociateRouteTable(rtb-2,subnet-2)",
	}, client.calls)

	// Public table routes to the gateway, private table has no routes
	assert.Equal(t, map[string]string{"rtb-1": "igw-123"}, client.defaultRoutes)
	assert.Equal(t, map[string]string{"rtb-1": "subnet-1", "rtb-2": "subnet-2"}, client.associations)
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name          string
		failOn        string
		failOnNth     int
		wantStep      string
		wantCompleted int
		// a call that belongs to a later step and must never happen
		forbiddenCall string
	}{
		{"vpc creation", "CreateVPC", 1, StepCreateVPC, 0, "CreateInternetGateway"},
		{"vpc availability wait", "WaitVPCAvailable", 1, StepCreateVPC, 0, "CreateInternetGateway"},
		{"gateway creation", "CreateInternetGateway", 1, StepCreateInternetGateway, 1, "CreateSubnet"},
		{"gateway attach", "AttachInternetGateway", 1, StepCreateInternetGateway, 1, "CreateSubnet"},
		{"public subnet", "CreateSubnet", 1, StepCreatePublicSubnet, 2, "CreateRouteTable"},
		{"private subnet", "CreateSubnet", 2, StepCreatePrivateSubnet, 3, "CreateRouteTable"},
		{"public route table", "CreateRouteTable", 1, StepPublicRouteTable, 4, "CreateDefaultRoute"},
		{"public default route", "CreateDefaultRoute", 1, StepPublicRouteTable, 4, ""},
		{"private route table", "CreateRouteTable", 2, StepPrivateRouteTable, 5, ""},
		{"private association", "AssociateRouteTable", 2, StepPrivateRouteTable, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			client.failOn = tt.failOn
			client.failOnNth = tt.failOnNth

			result, err := NewExecutor(client).Execute(context.Background(), mustPlan(t))
			require.Error(t, err)
			assert.False(t, result.OK())

			var remote *RemoteOperationError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.wantStep, remote.Step)
			assert.ErrorIs(t, err, client.err)

			assert.Len(t, result.Completed, tt.wantCompleted)

			if tt.forbiddenCall != "" {
				assert.Zero(t, client.seen[tt.forbiddenCall],
					"no step after the failing one may run")
			}
		})
	}
}

func TestExecute_UntaggedResourceFailsItsStep(t *testing.T) {
	client := newFakeClient()
	client.failOn = "TagResource" // VPC was created but could not be tagged

	result, err := NewExecutor(client).Execute(context.Background(), mustPlan(t))
	require.Error(t, err)

	var remote *RemoteOperationError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, StepCreateVPC, remote.Step)
	assert.Empty(t, result.Completed)
	assert.Positive(t, client.seen["CreateVPC"], "the remote resource was created before the failure")
}

func TestExecute_PartialFailureReportsHandles(t *testing.T) {
	// Association of the private route table fails; everything before it
	// stays reported so a human can clean up.
	client := newFakeClient()
	client.failOn = "AssociateRouteTable"
	client.failOnNth = 2

	result, err := NewExecutor(client).Execute(context.Background(), mustPlan(t))
	require.Error(t, err)

	assert.Equal(t, []Handle{
		{Kind: KindVPC, ID: "vpc-123"},
		{Kind: KindInternetGateway, ID: "igw-123"},
		{Kind: KindSubnet, ID: "subnet-1"},
		{Kind: KindSubnet, ID: "subnet-2"},
		{Kind: KindRouteTable, ID: "rtb-1"},
	}, result.Completed)

	assert.Equal(t, "vpc-123", result.VPC.ID)
	assert.Equal(t, "rtb-1", result.PublicRouteTable.ID)
	assert.Empty(t, result.PrivateRouteTable.ID)
}

func TestExecute_ObserverSeesEachStepInOrder(t *testing.T) {
	client := newFakeClient()

	var steps []string
	executor := NewExecutor(client, WithObserver(func(sr StepResult) {
		steps = append(steps, sr.Step)
	}))

	_, err := executor.Execute(context.Background(), mustPlan(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		StepCreateVPC,
		StepCreateInternetGateway,
		StepCreatePublicSubnet,
		StepCreatePrivateSubnet,
		StepPublicRouteTable,
		StepPrivateRouteTable,
	}, steps)
}

func TestExecute_CancelledBeforeStart(t *testing.T) {
	client := newFakeClient()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewExecutor(client).Execute(ctx, mustPlan(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Completed)
	assert.Empty(t, client.calls, "no remote call after cancellation")
}

func TestExecute_CancelAbortsBeforeNextStep(t *testing.T) {
	client := newFakeClient()

	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(client, WithObserver(func(sr StepResult) {
		if sr.Step == StepCreateInternetGateway {
			cancel()
		}
	}))

	result, err := executor.Execute(ctx, mustPlan(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var remote *RemoteOperationError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, StepCreatePublicSubnet, remote.Step)

	// Completed steps stay completed
	assert.Len(t, result.Completed, 2)
	assert.Zero(t, client.seen["CreateSubnet"])
}

func TestBuildPlan_InvalidInputTouchesNoClient(t *testing.T) {
	client := newFakeClient()

	in := validInput()
	in.PublicSubnetCIDR = "999.0.0.0/24"

	_, err := BuildPlan(in)
	require.Error(t, err)
	assert.Empty(t, client.calls)
}
