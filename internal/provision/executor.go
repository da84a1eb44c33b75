package provision

import (
	"context"

	"github.com/vietdv277/stratus/pkg/provider"
)

// Step names, in execution order.
const (
	StepCreateVPC             = "create-vpc"
	StepCreateInternetGateway = "create-internet-gateway"
	StepCreatePublicSubnet    = "create-public-subnet"
	StepCreatePrivateSubnet   = "create-private-subnet"
	StepPublicRouteTable      = "create-public-route-table"
	StepPrivateRouteTable     = "create-private-route-table"
)

// ResourceKind identifies what a handle refers to.
type ResourceKind string

const (
	KindVPC             ResourceKind = "vpc"
	KindInternetGateway ResourceKind = "internet-gateway"
	KindSubnet          ResourceKind = "subnet"
	KindRouteTable      ResourceKind = "route-table"
)

// Handle is a provider-assigned identifier for a created resource. Handles
// live only for the duration of one execution; nothing is persisted.
type Handle struct {
	Kind ResourceKind
	ID   string
}

// StepResult is the outcome of one provisioning step.
type StepResult struct {
	Step   string
	Handle Handle
	Err    error
}

// Result is the structured outcome of one plan execution. Completed holds
// the handles of every resource created before the first failure, in
// creation order, so a caller can clean up or resume manually; the executor
// itself never rolls anything back.
type Result struct {
	Steps     []StepResult
	Completed []Handle
	Failed    *RemoteOperationError

	VPC               Handle
	InternetGateway   Handle
	PublicSubnet      Handle
	PrivateSubnet     Handle
	PublicRouteTable  Handle
	PrivateRouteTable Handle
}

// OK reports whether every step completed.
func (r *Result) OK() bool {
	return r.Failed == nil
}

func (r *Result) fail(step string, err error) {
	r.Failed = &RemoteOperationError{Step: step, Err: err}
	r.Steps = append(r.Steps, StepResult{Step: step, Err: err})
}

// Executor walks a plan's steps strictly in order against a cloud client.
type Executor struct {
	client  provider.NetworkProvisioner
	observe func(StepResult)
}

// ExecutorOption customizes an Executor
type ExecutorOption func(*Executor)

// WithObserver registers a callback invoked after each successful step,
// typically to print a per-resource progress line.
func WithObserver(fn func(StepResult)) ExecutorOption {
	return func(e *Executor) {
		e.observe = fn
	}
}

// NewExecutor creates an executor backed by the given client
func NewExecutor(client provider.NetworkProvisioner, opts ...ExecutorOption) *Executor {
	e := &Executor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the plan's six steps in order, threading each created
// resource ID into the requests of later steps. The first failure stops
// execution immediately; the returned Result always carries the handles
// created up to that point. Cancellation via ctx aborts before the next
// step begins but never undoes a step already completed.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	res := &Result{}

	run := func(step string, kind ResourceKind, create func() (string, error)) (Handle, bool) {
		if err := ctx.Err(); err != nil {
			res.fail(step, err)
			return Handle{}, false
		}

		id, err := create()
		if err != nil {
			res.fail(step, err)
			return Handle{}, false
		}

		h := Handle{Kind: kind, ID: id}
		sr := StepResult{Step: step, Handle: h}
		res.Steps = append(res.Steps, sr)
		res.Completed = append(res.Completed, h)
		if e.observe != nil {
			e.observe(sr)
		}
		return h, true
	}

	// 1. VPC: create, wait until available, tag. Subnets cannot be carved
	// out of a pending VPC, so the wait happens here, not lazily.
	vpc, ok := run(StepCreateVPC, KindVPC, func() (string, error) {
		id, err := e.client.CreateVPC(ctx, plan.VPCCIDR.String())
		if err != nil {
			return "", err
		}
		if err := e.client.WaitVPCAvailable(ctx, id); err != nil {
			return "", err
		}
		if err := e.client.TagResource(ctx, id, "Name", plan.VPCName); err != nil {
			return "", err
		}
		return id, nil
	})
	if !ok {
		return res, res.Failed
	}
	res.VPC = vpc

	// 2. Internet gateway: create and attach to the VPC
	igw, ok := run(StepCreateInternetGateway, KindInternetGateway, func() (string, error) {
		id, err := e.client.CreateInternetGateway(ctx)
		if err != nil {
			return "", err
		}
		if err := e.client.AttachInternetGateway(ctx, id, vpc.ID); err != nil {
			return "", err
		}
		return id, nil
	})
	if !ok {
		return res, res.Failed
	}
	res.InternetGateway = igw

	// 3. Public subnet
	public, ok := run(StepCreatePublicSubnet, KindSubnet, func() (string, error) {
		return e.createSubnet(ctx, vpc.ID, plan.PublicSubnetCIDR, plan.AvailabilityZone, "PublicSubnet")
	})
	if !ok {
		return res, res.Failed
	}
	res.PublicSubnet = public

	// 4. Private subnet
	private, ok := run(StepCreatePrivateSubnet, KindSubnet, func() (string, error) {
		return e.createSubnet(ctx, vpc.ID, plan.PrivateSubnetCIDR, plan.AvailabilityZone, "PrivateSubnet")
	})
	if !ok {
		return res, res.Failed
	}
	res.PrivateSubnet = private

	// 5. Public route table: gateway handle present, so it gets the
	// 0.0.0.0/0 route
	publicRT, ok := run(StepPublicRouteTable, KindRouteTable, func() (string, error) {
		return e.provisionRouteTable(ctx, vpc.ID, public.ID, igw.ID, "PublicRouteTable")
	})
	if !ok {
		return res, res.Failed
	}
	res.PublicRouteTable = publicRT

	// 6. Private route table: no gateway handle, no default route
	privateRT, ok := run(StepPrivateRouteTable, KindRouteTable, func() (string, error) {
		return e.provisionRouteTable(ctx, vpc.ID, private.ID, "", "PrivateRouteTable")
	})
	if !ok {
		return res, res.Failed
	}
	res.PrivateRouteTable = privateRT

	return res, nil
}

// createSubnet creates and tags one subnet. Tagging is part of the step: a
// created-but-untagged subnet counts as a failure, though the remote
// resource persists.
func (e *Executor) createSubnet(ctx context.Context, vpcID string, cidr AddressBlock, az, name string) (string, error) {
	id, err := e.client.CreateSubnet(ctx, vpcID, cidr.String(), az)
	if err != nil {
		return "", err
	}
	if err := e.client.TagResource(ctx, id, "Name", name); err != nil {
		return "", err
	}
	return id, nil
}

// provisionRouteTable runs the compound route-table step: create, tag,
// associate with the subnet, and add a default route when a gateway ID is
// supplied. The gateway ID being empty or not is the sole switch between
// private and public behavior.
func (e *Executor) provisionRouteTable(ctx context.Context, vpcID, subnetID, gatewayID, name string) (string, error) {
	id, err := e.client.CreateRouteTable(ctx, vpcID)
	if err != nil {
		return "", err
	}
	if err := e.client.TagResource(ctx, id, "Name", name); err != nil {
		return "", err
	}
	if err := e.client.AssociateRouteTable(ctx, id, subnetID); err != nil {
		return "", err
	}
	if gatewayID != "" {
		if err := e.client.CreateDefaultRoute(ctx, id, gatewayID); err != nil {
			return "", err
		}
	}
	return id, nil
}
