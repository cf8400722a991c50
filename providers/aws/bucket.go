package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// BucketAPI is the S3 surface the bucket adapter calls
type BucketAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
	GetBucketWebsite(ctx context.Context, params *s3.GetBucketWebsiteInput, optFns ...func(*s3.Options)) (*s3.GetBucketWebsiteOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

// BucketAdapter finds and deletes empty S3 buckets.
// Bucket deletion is permanent; the name becomes claimable by anyone.
type BucketAdapter struct {
	clients     func(region string) BucketAPI
	skipWebsite bool
	logger      *telemetry.Logger
}

// NewBucketAdapter creates the bucket adapter. With skipWebsite set, empty
// buckets serving a static website are excluded.
func NewBucketAdapter(factory *ClientFactory, skipWebsite bool, logger *telemetry.Logger) *BucketAdapter {
	return &BucketAdapter{
		clients:     func(region string) BucketAPI { return factory.S3(region) },
		skipWebsite: skipWebsite,
		logger:      logger,
	}
}

// NewBucketAdapterWithClients creates the bucket adapter with an explicit
// client source, for tests
func NewBucketAdapterWithClients(clients func(region string) BucketAPI, skipWebsite bool, logger *telemetry.Logger) *BucketAdapter {
	return &BucketAdapter{clients: clients, skipWebsite: skipWebsite, logger: logger}
}

// Type returns the resource kind
func (a *BucketAdapter) Type() types.ResourceType {
	return types.TypeBucket
}

// Enumerate lists buckets homed in the given region. ListBuckets is a
// global call; the location lookup narrows it to one region.
func (a *BucketAdapter) Enumerate(ctx context.Context, region string) ([]types.ResourceCandidate, error) {
	client := a.clients(region)

	output, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var candidates []types.ResourceCandidate
	for _, bucket := range output.Buckets {
		name := awssdk.ToString(bucket.Name)

		bucketRegion, err := a.bucketRegion(ctx, client, name)
		if err != nil {
			a.logger.LogScanError(ctx, region, string(types.TypeBucket), fmt.Errorf("bucket %s: %w", name, err))
			continue
		}
		if bucketRegion != region {
			continue
		}

		candidate, err := a.describeBucket(ctx, client, name, region, bucket.CreationDate)
		if err != nil {
			a.logger.LogScanError(ctx, region, string(types.TypeBucket), fmt.Errorf("bucket %s: %w", name, err))
			continue
		}
		candidates = append(candidates, *candidate)
	}

	return candidates, nil
}

// LookupOne re-reads a single bucket's state for the pre-destroy race check
func (a *BucketAdapter) LookupOne(ctx context.Context, region, id string) (*types.ResourceCandidate, error) {
	candidate, err := a.describeBucket(ctx, a.clients(region), id, region, nil)
	if err != nil {
		if isBucketGone(err) {
			return nil, nil
		}
		return nil, err
	}
	return candidate, nil
}

// IsEligible accepts buckets with zero objects and versioning not enabled
func (a *BucketAdapter) IsEligible(candidate types.ResourceCandidate) (bool, string) {
	if candidate.IntAttr("object_count") > 0 {
		return false, "bucket has objects"
	}
	if candidate.StringAttr("versioning") == "Enabled" {
		return false, "versioning enabled"
	}
	if a.skipWebsite && candidate.BoolAttr("website_config") {
		return false, "static website configuration present"
	}
	return true, "empty with versioning not enabled"
}

// Destroy deletes the bucket. An already-deleted bucket counts as success.
func (a *BucketAdapter) Destroy(ctx context.Context, candidate types.ResourceCandidate) error {
	_, err := a.clients(candidate.Region).DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: awssdk.String(candidate.ID),
	})
	if err != nil && !isBucketGone(err) {
		return fmt.Errorf("failed to delete bucket %s: %w", candidate.ID, err)
	}
	return nil
}

// bucketRegion resolves a bucket's home region. An empty location
// constraint means us-east-1.
func (a *BucketAdapter) bucketRegion(ctx context.Context, client BucketAPI, name string) (string, error) {
	output, err := client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: awssdk.String(name),
	})
	if err != nil {
		return "", err
	}
	if output.LocationConstraint == "" {
		return "us-east-1", nil
	}
	return string(output.LocationConstraint), nil
}

// describeBucket builds a candidate with the attributes the eligibility
// predicate reads
func (a *BucketAdapter) describeBucket(ctx context.Context, client BucketAPI, name, region string, created *time.Time) (*types.ResourceCandidate, error) {
	objects, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  awssdk.String(name),
		MaxKeys: awssdk.Int32(1),
	})
	if err != nil {
		return nil, err
	}

	versioning, err := client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: awssdk.String(name),
	})
	if err != nil {
		return nil, err
	}
	// An unconfigured bucket reports no status at all
	status := string(versioning.Status)
	if status == "" {
		status = string(s3types.BucketVersioningStatusSuspended)
	}

	attributes := map[string]any{
		"object_count": len(objects.Contents),
		"versioning":   status,
	}
	if created != nil {
		attributes["created"] = *created
	}

	if a.skipWebsite {
		hasWebsite, err := a.hasWebsite(ctx, client, name)
		if err != nil {
			return nil, err
		}
		attributes["website_config"] = hasWebsite
	}

	return &types.ResourceCandidate{
		ID:           name,
		Type:         types.TypeBucket,
		Region:       region,
		Attributes:   attributes,
		DiscoveredAt: time.Now(),
	}, nil
}

// hasWebsite checks for a static website configuration
func (a *BucketAdapter) hasWebsite(ctx context.Context, client BucketAPI, name string) (bool, error) {
	_, err := client.GetBucketWebsite(ctx, &s3.GetBucketWebsiteInput{
		Bucket: awssdk.String(name),
	})
	if err != nil {
		if hasNoWebsiteConfig(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
