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

// VolumeAPI is the EC2 surface the volume adapter calls
type VolumeAPI interface {
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DeleteVolume(ctx context.Context, params *ec2.DeleteVolumeInput, optFns ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error)
}

// VolumeAdapter finds and deletes unattached EBS volumes
type VolumeAdapter struct {
	clients func(region string) VolumeAPI
}

// NewVolumeAdapter creates the volume adapter
func NewVolumeAdapter(factory *ClientFactory) *VolumeAdapter {
	return &VolumeAdapter{
		clients: func(region string) VolumeAPI { return factory.EC2(region) },
	}
}

// NewVolumeAdapterWithClients creates the volume adapter with an explicit
// client source, for tests
func NewVolumeAdapterWithClients(clients func(region string) VolumeAPI) *VolumeAdapter {
	return &VolumeAdapter{clients: clients}
}

// Type returns the resource kind
func (a *VolumeAdapter) Type() types.ResourceType {
	return types.TypeVolume
}

// Enumerate lists all EBS volumes in the region
func (a *VolumeAdapter) Enumerate(ctx context.Context, region string) ([]types.ResourceCandidate, error) {
	var candidates []types.ResourceCandidate

	paginator := ec2.NewDescribeVolumesPaginator(a.clients(region), &ec2.DescribeVolumesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list EBS volumes: %w", err)
		}
		for _, volume := range output.Volumes {
			candidates = append(candidates, a.processVolume(volume, region))
		}
	}

	return candidates, nil
}

// LookupOne re-reads a single volume's state for the pre-destroy race check
func (a *VolumeAdapter) LookupOne(ctx context.Context, region, id string) (*types.ResourceCandidate, error) {
	output, err := a.clients(region).DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{id},
	})
	if err != nil {
		if isVolumeGone(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe volume %s: %w", id, err)
	}
	if len(output.Volumes) == 0 {
		return nil, nil
	}

	candidate := a.processVolume(output.Volumes[0], region)
	return &candidate, nil
}

// IsEligible accepts volumes in state available with zero attachments
func (a *VolumeAdapter) IsEligible(candidate types.ResourceCandidate) (bool, string) {
	state := candidate.StringAttr("state")
	if state != string(ec2types.VolumeStateAvailable) {
		return false, fmt.Sprintf("volume state is %q, not available", state)
	}
	if n := candidate.IntAttr("attachment_count"); n > 0 {
		return false, fmt.Sprintf("volume has %d attachment(s)", n)
	}
	return true, "state available with zero attachments"
}

// Destroy deletes the volume. An already-deleted volume counts as success.
func (a *VolumeAdapter) Destroy(ctx context.Context, candidate types.ResourceCandidate) error {
	_, err := a.clients(candidate.Region).DeleteVolume(ctx, &ec2.DeleteVolumeInput{
		VolumeId: awssdk.String(candidate.ID),
	})
	if err != nil && !isVolumeGone(err) {
		return fmt.Errorf("failed to delete volume %s: %w", candidate.ID, err)
	}
	return nil
}

// processVolume builds a candidate from one described volume
func (a *VolumeAdapter) processVolume(volume ec2types.Volume, region string) types.ResourceCandidate {
	attributes := map[string]any{
		"state":            string(volume.State),
		"attachment_count": len(volume.Attachments),
		"size_gb":          awssdk.ToInt32(volume.Size),
		"volume_type":      string(volume.VolumeType),
		"encrypted":        awssdk.ToBool(volume.Encrypted),
	}
	if volume.CreateTime != nil {
		attributes["created"] = *volume.CreateTime
	}

	return types.ResourceCandidate{
		ID:           awssdk.ToString(volume.VolumeId),
		Type:         types.TypeVolume,
		Region:       region,
		Attributes:   attributes,
		DiscoveredAt: time.Now(),
	}
}
