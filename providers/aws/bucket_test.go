package aws

import (
	"context"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// fakeBucket describes one bucket the fake S3 client serves
type fakeBucket struct {
	region     string
	objects    int
	versioning s3types.BucketVersioningStatus
	website    bool
}

type fakeS3 struct {
	buckets     map[string]fakeBucket
	deleteCalls []string
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	created := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	var buckets []s3types.Bucket
	for name := range f.buckets {
		buckets = append(buckets, s3types.Bucket{Name: awssdk.String(name), CreationDate: &created})
	}
	return &s3.ListBucketsOutput{Buckets: buckets}, nil
}

func (f *fakeS3) GetBucketLocation(_ context.Context, params *s3.GetBucketLocationInput, _ ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	b, ok := f.buckets[awssdk.ToString(params.Bucket)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket"}
	}
	constraint := s3types.BucketLocationConstraint(b.region)
	if b.region == "us-east-1" {
		constraint = ""
	}
	return &s3.GetBucketLocationOutput{LocationConstraint: constraint}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b, ok := f.buckets[awssdk.ToString(params.Bucket)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket"}
	}
	var contents []s3types.Object
	if b.objects > 0 {
		contents = []s3types.Object{{Key: awssdk.String("obj-0")}}
	}
	return &s3.ListObjectsV2Output{Contents: contents}, nil
}

func (f *fakeS3) GetBucketVersioning(_ context.Context, params *s3.GetBucketVersioningInput, _ ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error) {
	b, ok := f.buckets[awssdk.ToString(params.Bucket)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket"}
	}
	return &s3.GetBucketVersioningOutput{Status: b.versioning}, nil
}

func (f *fakeS3) GetBucketWebsite(_ context.Context, params *s3.GetBucketWebsiteInput, _ ...func(*s3.Options)) (*s3.GetBucketWebsiteOutput, error) {
	b, ok := f.buckets[awssdk.ToString(params.Bucket)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket"}
	}
	if !b.website {
		return nil, &smithy.GenericAPIError{Code: "NoSuchWebsiteConfiguration"}
	}
	return &s3.GetBucketWebsiteOutput{}, nil
}

func (f *fakeS3) DeleteBucket(_ context.Context, params *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	name := awssdk.ToString(params.Bucket)
	f.deleteCalls = append(f.deleteCalls, name)
	if _, ok := f.buckets[name]; !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket"}
	}
	delete(f.buckets, name)
	return &s3.DeleteBucketOutput{}, nil
}

func newBucketAdapter(client *fakeS3, skipWebsite bool) *BucketAdapter {
	return NewBucketAdapterWithClients(
		func(string) BucketAPI { return client },
		skipWebsite,
		telemetry.NewLogger("test"),
	)
}

func TestBucketAdapter_EnumerateFiltersByRegion(t *testing.T) {
	client := &fakeS3{buckets: map[string]fakeBucket{
		"logs-2019":    {region: "us-east-1", versioning: s3types.BucketVersioningStatusSuspended},
		"archive-prod": {region: "us-east-1", versioning: s3types.BucketVersioningStatusEnabled},
		"eu-data":      {region: "eu-west-1"},
	}}
	adapter := newBucketAdapter(client, false)

	candidates, err := adapter.Enumerate(context.Background(), "us-east-1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, "us-east-1", c.Region)
		assert.Equal(t, types.TypeBucket, c.Type)
	}
}

func TestBucketAdapter_IsEligible(t *testing.T) {
	adapter := newBucketAdapter(&fakeS3{}, false)

	tests := []struct {
		name       string
		attributes map[string]any
		want       bool
		reason     string
	}{
		{
			name:       "empty suspended bucket is eligible",
			attributes: map[string]any{"object_count": 0, "versioning": "Suspended"},
			want:       true,
			reason:     "empty with versioning not enabled",
		},
		{
			name:       "versioning enabled blocks deletion",
			attributes: map[string]any{"object_count": 0, "versioning": "Enabled"},
			want:       false,
			reason:     "versioning enabled",
		},
		{
			name:       "non-empty bucket blocks deletion",
			attributes: map[string]any{"object_count": 1, "versioning": "Suspended"},
			want:       false,
			reason:     "bucket has objects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := adapter.IsEligible(types.ResourceCandidate{
				ID:         "logs-2019",
				Type:       types.TypeBucket,
				Attributes: tt.attributes,
			})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestBucketAdapter_WebsiteRule(t *testing.T) {
	candidate := types.ResourceCandidate{
		ID:   "www-site",
		Type: types.TypeBucket,
		Attributes: map[string]any{
			"object_count":   0,
			"versioning":     "Suspended",
			"website_config": true,
		},
	}

	// Rule off by default
	eligible, _ := newBucketAdapter(&fakeS3{}, false).IsEligible(candidate)
	assert.True(t, eligible)

	eligible, reason := newBucketAdapter(&fakeS3{}, true).IsEligible(candidate)
	assert.False(t, eligible)
	assert.Equal(t, "static website configuration present", reason)
}

func TestBucketAdapter_LookupOneGone(t *testing.T) {
	adapter := newBucketAdapter(&fakeS3{buckets: map[string]fakeBucket{}}, false)

	candidate, err := adapter.LookupOne(context.Background(), "us-east-1", "vanished")
	require.NoError(t, err)
	assert.Nil(t, candidate)
}

func TestBucketAdapter_DestroyIdempotent(t *testing.T) {
	client := &fakeS3{buckets: map[string]fakeBucket{}}
	adapter := newBucketAdapter(client, false)

	// Already-gone bucket is success, not error
	err := adapter.Destroy(context.Background(), types.ResourceCandidate{
		ID: "already-gone", Type: types.TypeBucket, Region: "us-east-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"already-gone"}, client.deleteCalls)
}
