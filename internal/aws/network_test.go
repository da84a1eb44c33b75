package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/vietdv277/stratus/pkg/provider"
)

// The provisioning executor consumes the client through this interface.
var _ provider.NetworkProvisioner = (*Client)(nil)

func TestDeref(t *testing.T) {
	if got := deref(nil); got != "" {
		t.Errorf("deref(nil) = %q, want empty", got)
	}
	if got := deref(aws.String("vpc-123")); got != "vpc-123" {
		t.Errorf("deref = %q, want vpc-123", got)
	}
}
