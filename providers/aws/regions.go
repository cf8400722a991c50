package aws

import (
	"context"
	"fmt"
	"sort"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// discoveryRegion is where DescribeRegions is issued from; any enabled
// region would do
const discoveryRegion = "us-east-1"

// RegionsAPI is the EC2 surface used for region discovery
type RegionsAPI interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// RegionEnumerator discovers enabled regions for the account
type RegionEnumerator struct {
	client RegionsAPI
}

// NewRegionEnumerator creates a region enumerator backed by EC2
func NewRegionEnumerator(factory *ClientFactory) *RegionEnumerator {
	return &RegionEnumerator{client: factory.EC2(discoveryRegion)}
}

// NewRegionEnumeratorWithClient creates a region enumerator with an
// explicit client, for tests
func NewRegionEnumeratorWithClient(client RegionsAPI) *RegionEnumerator {
	return &RegionEnumerator{client: client}
}

// ListRegions returns every enabled region name, sorted for deterministic
// scan ordering
func (e *RegionEnumerator) ListRegions(ctx context.Context) ([]string, error) {
	output, err := e.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	regions := make([]string, 0, len(output.Regions))
	for _, region := range output.Regions {
		regions = append(regions, awssdk.ToString(region.RegionName))
	}
	sort.Strings(regions)

	return regions, nil
}
