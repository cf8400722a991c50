package providers

import (
	"context"
	"fmt"

	"github.com/yairfalse/kulu/types"
)

// ResourceAdapter is the per-type strategy behind the reclaim pipeline.
// One adapter exists per resource kind and has no cross-region knowledge.
type ResourceAdapter interface {
	// Type returns the resource kind this adapter handles
	Type() types.ResourceType

	// Enumerate lists all candidates of this type in one region.
	// It never mutates state.
	Enumerate(ctx context.Context, region string) ([]types.ResourceCandidate, error)

	// LookupOne re-enumerates a single candidate by ID for the race check
	// immediately before destroy. Returns nil when the resource is gone.
	LookupOne(ctx context.Context, region, id string) (*types.ResourceCandidate, error)

	// IsEligible is a pure function of the candidate's attributes.
	// The reason is mandatory either way.
	IsEligible(candidate types.ResourceCandidate) (bool, string)

	// Destroy issues the irreversible deletion call. A resource that is
	// already gone counts as success.
	Destroy(ctx context.Context, candidate types.ResourceCandidate) error
}

// RegionEnumerator obtains the set of region identifiers to scan
type RegionEnumerator interface {
	ListRegions(ctx context.Context) ([]string, error)
}

// StaticRegions is a RegionEnumerator over a fixed region list
type StaticRegions []string

// ListRegions returns the fixed list
func (s StaticRegions) ListRegions(_ context.Context) ([]string, error) {
	return s, nil
}

// ScanError marks a failed enumeration for one region and type.
// It is isolated: the run continues with partial results.
type ScanError struct {
	Region string
	Type   types.ResourceType
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s/%s: %v", e.Region, e.Type, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
