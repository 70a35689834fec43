package advisor

import (
	"strings"
	"testing"
)

func TestFarmerContext_Absorb(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    FarmerContext
	}{
		{
			name:    "soil and location",
			message: "I have loamy soil in Punjab",
			want:    FarmerContext{SoilType: "loamy", Location: "punjab"},
		},
		{
			name:    "crop mention",
			message: "Last year I grew wheat",
			want:    FarmerContext{PreviousCrop: "wheat"},
		},
		{
			name:    "greenhouse farmer",
			message: "I run a greenhouse near Nashik",
			want:    FarmerContext{Location: "nashik", FarmerType: "greenhouse"},
		},
		{
			name:    "nothing recognizable",
			message: "hello there",
			want:    FarmerContext{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fc := FarmerContext{}
			fc.Absorb(tc.message)
			if fc != tc.want {
				t.Errorf("Absorb(%q) = %+v, want %+v", tc.message, fc, tc.want)
			}
		})
	}
}

func TestFarmerContext_AbsorbAccumulates(t *testing.T) {
	fc := FarmerContext{}
	fc.Absorb("My soil is sandy")
	fc.Absorb("I am in Jalgaon and grow bananas")

	if fc.SoilType != "sandy" {
		t.Errorf("Expected sandy soil remembered, got %q", fc.SoilType)
	}
	if fc.Location != "jalgaon" {
		t.Errorf("Expected jalgaon, got %q", fc.Location)
	}
	if fc.PreviousCrop != "banana" {
		t.Errorf("Expected banana, got %q", fc.PreviousCrop)
	}
}

func TestFarmerContext_Summary(t *testing.T) {
	fc := FarmerContext{SoilType: "clay", Location: "punjab"}

	summary := fc.Summary()
	if !strings.HasPrefix(summary, "KNOWN FARMER DETAILS") {
		t.Errorf("Expected summary header, got %q", summary)
	}
	if !strings.Contains(summary, "Soil type: clay") {
		t.Errorf("Expected soil type in summary, got %q", summary)
	}
	if !strings.Contains(summary, "Location: punjab") {
		t.Errorf("Expected location in summary, got %q", summary)
	}
}

func TestFarmerContext_SummaryEmpty(t *testing.T) {
	fc := FarmerContext{}
	if got := fc.Summary(); got != "" {
		t.Errorf("Expected empty summary, got %q", got)
	}
}
