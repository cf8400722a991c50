package types

import (
	"fmt"
	"time"
)

// ResourceType identifies a reclaimable resource kind
type ResourceType string

const (
	TypeBucket    ResourceType = "bucket"
	TypeVolume    ResourceType = "volume"
	TypeElasticIP ResourceType = "elastic-ip"
)

// AllResourceTypes returns every known type in adapter registration order
func AllResourceTypes() []ResourceType {
	return []ResourceType{TypeBucket, TypeVolume, TypeElasticIP}
}

// ParseResourceType parses a CLI/config resource type value
func ParseResourceType(s string) (ResourceType, error) {
	switch ResourceType(s) {
	case TypeBucket, TypeVolume, TypeElasticIP:
		return ResourceType(s), nil
	}
	return "", fmt.Errorf("unknown resource type %q (must be bucket, volume or elastic-ip)", s)
}

// ResourceCandidate is one billable resource discovered during a scan.
// Candidates are immutable once produced and live only for a single run.
type ResourceCandidate struct {
	ID           string         `json:"id"`
	Type         ResourceType   `json:"type"`
	Region       string         `json:"region"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	DiscoveredAt time.Time      `json:"discovered_at"`
}

// StringAttr returns a string attribute or ""
func (c ResourceCandidate) StringAttr(key string) string {
	if v, ok := c.Attributes[key].(string); ok {
		return v
	}
	return ""
}

// IntAttr returns an integer attribute or 0
func (c ResourceCandidate) IntAttr(key string) int {
	switch v := c.Attributes[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// BoolAttr returns a boolean attribute or false
func (c ResourceCandidate) BoolAttr(key string) bool {
	if v, ok := c.Attributes[key].(bool); ok {
		return v
	}
	return false
}
