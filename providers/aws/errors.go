package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// hasErrorCode reports whether err is an AWS API error with one of the
// given codes
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

// isBucketGone reports whether err means the bucket no longer exists
func isBucketGone(err error) bool {
	return hasErrorCode(err, "NoSuchBucket", "NotFound")
}

// isVolumeGone reports whether err means the volume no longer exists
func isVolumeGone(err error) bool {
	return hasErrorCode(err, "InvalidVolume.NotFound")
}

// isAddressGone reports whether err means the allocation no longer exists
func isAddressGone(err error) bool {
	return hasErrorCode(err, "InvalidAllocationID.NotFound", "InvalidAddress.NotFound")
}

// hasNoWebsiteConfig reports whether err is the expected response for a
// bucket without a static website configuration
func hasNoWebsiteConfig(err error) bool {
	return hasErrorCode(err, "NoSuchWebsiteConfiguration")
}
