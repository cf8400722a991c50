package types

import (
	"testing"
)

func TestParseResourceType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ResourceType
		wantErr bool
	}{
		{name: "bucket", input: "bucket", want: TypeBucket},
		{name: "volume", input: "volume", want: TypeVolume},
		{name: "elastic ip", input: "elastic-ip", want: TypeElasticIP},
		{name: "unknown", input: "lambda", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResourceType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseResourceType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResourceCandidate_Attrs(t *testing.T) {
	c := ResourceCandidate{
		ID:   "vol-001",
		Type: TypeVolume,
		Attributes: map[string]any{
			"state":            "available",
			"attachment_count": 0,
			"size_gb":          int32(100),
			"encrypted":        true,
		},
	}

	if got := c.StringAttr("state"); got != "available" {
		t.Errorf("StringAttr(state) = %q, want available", got)
	}
	if got := c.IntAttr("attachment_count"); got != 0 {
		t.Errorf("IntAttr(attachment_count) = %d, want 0", got)
	}
	if got := c.IntAttr("size_gb"); got != 100 {
		t.Errorf("IntAttr(size_gb) = %d, want 100", got)
	}
	if !c.BoolAttr("encrypted") {
		t.Error("BoolAttr(encrypted) = false, want true")
	}

	// Missing or mistyped keys fall back to zero values
	if got := c.StringAttr("missing"); got != "" {
		t.Errorf("StringAttr(missing) = %q, want empty", got)
	}
	if got := c.IntAttr("state"); got != 0 {
		t.Errorf("IntAttr(state) = %d, want 0", got)
	}
	if c.BoolAttr("size_gb") {
		t.Error("BoolAttr(size_gb) = true, want false")
	}
}
