package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(KindPredictionReport, "v1.2.3")

	if h.Kind != KindPredictionReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindPredictionReport)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", h.Metadata["version"])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp %q: %v", h.Metadata["timestamp"], err)
	}
}

func TestNewWithoutVersion(t *testing.T) {
	h := New(KindArtifactSummary, "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("version should be omitted when empty")
	}
}

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindPredictionReport, true},
		{KindArtifactSummary, true},
		{"Snapshot", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
