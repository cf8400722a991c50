package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/yairfalse/kulu/types"
)

// AddressAPI is the EC2 surface the elastic IP adapter calls
type AddressAPI interface {
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
}

// ElasticIPAdapter finds and releases unassociated Elastic IPs.
// Released addresses cannot be recovered.
type ElasticIPAdapter struct {
	clients func(region string) AddressAPI
}

// NewElasticIPAdapter creates the elastic IP adapter
func NewElasticIPAdapter(factory *ClientFactory) *ElasticIPAdapter {
	return &ElasticIPAdapter{
		clients: func(region string) AddressAPI { return factory.EC2(region) },
	}
}

// NewElasticIPAdapterWithClients creates the elastic IP adapter with an
// explicit client source, for tests
func NewElasticIPAdapterWithClients(clients func(region string) AddressAPI) *ElasticIPAdapter {
	return &ElasticIPAdapter{clients: clients}
}

// Type returns the resource kind
func (a *ElasticIPAdapter) Type() types.ResourceType {
	return types.TypeElasticIP
}

// Enumerate lists all VPC-domain Elastic IPs in the region
func (a *ElasticIPAdapter) Enumerate(ctx context.Context, region string) ([]types.ResourceCandidate, error) {
	output, err := a.clients(region).DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("domain"), Values: []string{"vpc"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list Elastic IPs: %w", err)
	}

	candidates := make([]types.ResourceCandidate, 0, len(output.Addresses))
	for _, address := range output.Addresses {
		candidates = append(candidates, a.processAddress(address, region))
	}

	return candidates, nil
}

// LookupOne re-reads a single allocation for the pre-destroy race check
func (a *ElasticIPAdapter) LookupOne(ctx context.Context, region, id string) (*types.ResourceCandidate, error) {
	output, err := a.clients(region).DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		AllocationIds: []string{id},
	})
	if err != nil {
		if isAddressGone(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe allocation %s: %w", id, err)
	}
	if len(output.Addresses) == 0 {
		return nil, nil
	}

	candidate := a.processAddress(output.Addresses[0], region)
	return &candidate, nil
}

// IsEligible accepts addresses with no association at all
func (a *ElasticIPAdapter) IsEligible(candidate types.ResourceCandidate) (bool, string) {
	if assoc := candidate.StringAttr("association_id"); assoc != "" {
		return false, fmt.Sprintf("associated (%s)", assoc)
	}
	if instance := candidate.StringAttr("instance_id"); instance != "" {
		return false, fmt.Sprintf("bound to instance %s", instance)
	}
	if eni := candidate.StringAttr("network_interface_id"); eni != "" {
		return false, fmt.Sprintf("bound to network interface %s", eni)
	}
	return true, "no association"
}

// Destroy releases the address. An already-released allocation counts as
// success.
func (a *ElasticIPAdapter) Destroy(ctx context.Context, candidate types.ResourceCandidate) error {
	_, err := a.clients(candidate.Region).ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
		AllocationId: awssdk.String(candidate.ID),
	})
	if err != nil && !isAddressGone(err) {
		return fmt.Errorf("failed to release Elastic IP %s: %w", candidate.ID, err)
	}
	return nil
}

// processAddress builds a candidate from one described address
func (a *ElasticIPAdapter) processAddress(address ec2types.Address, region string) types.ResourceCandidate {
	return types.ResourceCandidate{
		ID:     awssdk.ToString(address.AllocationId),
		Type:   types.TypeElasticIP,
		Region: region,
		Attributes: map[string]any{
			"public_ip":            awssdk.ToString(address.PublicIp),
			"private_ip":           awssdk.ToString(address.PrivateIpAddress),
			"association_id":       awssdk.ToString(address.AssociationId),
			"instance_id":          awssdk.ToString(address.InstanceId),
			"network_interface_id": awssdk.ToString(address.NetworkInterfaceId),
		},
		DiscoveredAt: time.Now(),
	}
}
