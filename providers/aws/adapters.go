package aws

import (
	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// BuildAdapters constructs the selected adapters in registration order:
// bucket, volume, elastic IP. Registration order fixes output ordering.
func BuildAdapters(factory *ClientFactory, selected []types.ResourceType, skipWebsiteBuckets bool, logger *telemetry.Logger) []providers.ResourceAdapter {
	wanted := make(map[types.ResourceType]bool, len(selected))
	for _, rt := range selected {
		wanted[rt] = true
	}

	var adapters []providers.ResourceAdapter
	if wanted[types.TypeBucket] {
		adapters = append(adapters, NewBucketAdapter(factory, skipWebsiteBuckets, logger))
	}
	if wanted[types.TypeVolume] {
		adapters = append(adapters, NewVolumeAdapter(factory))
	}
	if wanted[types.TypeElasticIP] {
		adapters = append(adapters, NewElasticIPAdapter(factory))
	}
	return adapters
}
