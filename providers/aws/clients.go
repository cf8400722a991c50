package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientFactory builds region-scoped service clients from one loaded AWS
// configuration. It is constructed once per run and injected down the
// pipeline; leaf functions never derive their own sessions.
type ClientFactory struct {
	cfg awssdk.Config
}

// NewClientFactory loads the AWS configuration, optionally from a named
// shared-config profile
func NewClientFactory(ctx context.Context, profile string) (*ClientFactory, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &ClientFactory{cfg: cfg}, nil
}

// EC2 returns an EC2 client scoped to the given region
func (f *ClientFactory) EC2(region string) *ec2.Client {
	return ec2.NewFromConfig(f.cfg, func(o *ec2.Options) {
		o.Region = region
	})
}

// S3 returns an S3 client scoped to the given region
func (f *ClientFactory) S3(region string) *s3.Client {
	return s3.NewFromConfig(f.cfg, func(o *s3.Options) {
		o.Region = region
	})
}
