package geo

import (
	"math"
	"testing"
)

func TestBoundingBox_ContainsCenter(t *testing.T) {
	box := BoundingBox(40.7128, -74.006, 50)
	if !box.Contains(40.7128, -74.006) {
		t.Error("center must lie inside its own box")
	}
}

func TestBoundingBox_LatDelta(t *testing.T) {
	box := BoundingBox(0, 0, 111)
	if math.Abs(box.LatMax-1) > 1e-9 || math.Abs(box.LatMin+1) > 1e-9 {
		t.Errorf("111km at the equator should span one degree of latitude, got [%v, %v]", box.LatMin, box.LatMax)
	}
	// At the equator longitude degrees match latitude degrees.
	if math.Abs(box.LonMax-1) > 1e-9 {
		t.Errorf("lon max = %v, want 1", box.LonMax)
	}
}

func TestBoundingBox_LonWidensWithLatitude(t *testing.T) {
	equator := BoundingBox(0, 0, 50)
	northern := BoundingBox(60, 0, 50)

	eqWidth := equator.LonMax - equator.LonMin
	noWidth := northern.LonMax - northern.LonMin
	if noWidth <= eqWidth {
		t.Errorf("longitude span should widen at high latitude: %v vs %v", noWidth, eqWidth)
	}
}

func TestBoundingBox_PolarDegenerate(t *testing.T) {
	box := BoundingBox(90, 0, 50)
	if box.LonMin > -180 || box.LonMax < 180 {
		t.Errorf("polar box should cover all longitudes, got [%v, %v]", box.LonMin, box.LonMax)
	}
}

func TestHaversine(t *testing.T) {
	// New York to Los Angeles, roughly 3936 km.
	d := Haversine(40.7128, -74.006, 34.0522, -118.2437)
	if d < 3900 || d > 3970 {
		t.Errorf("NYC-LA distance = %v km", d)
	}

	if d := Haversine(10, 20, 10, 20); d != 0 {
		t.Errorf("zero distance expected, got %v", d)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, 180.1, false},
		{-91, 0, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}
