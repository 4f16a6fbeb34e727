package utils

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5, 0, 10) = %f, expected 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15, 0, 10) = %f, expected 10", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %f, expected 5", got)
	}
}

func TestNormalize(t *testing.T) {
	nx, ny := Normalize(3, 4)
	if math.Abs(nx-0.6) > 1e-9 || math.Abs(ny-0.8) > 1e-9 {
		t.Errorf("Normalize(3, 4) = (%f, %f), expected (0.6, 0.8)", nx, ny)
	}

	nx, ny = Normalize(0, 0)
	if nx != 0 || ny != 0 {
		t.Errorf("Normalize(0, 0) = (%f, %f), expected (0, 0)", nx, ny)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance(0,0,3,4) = %f, expected 5", got)
	}
}

func TestPointInRect(t *testing.T) {
	if !PointInRect(5, 5, 0, 0, 10, 10) {
		t.Error("Point (5,5) should be inside rect (0,0,10,10)")
	}
	if PointInRect(10, 5, 0, 0, 10, 10) {
		t.Error("Right edge is exclusive")
	}
	if PointInRect(-1, 5, 0, 0, 10, 10) {
		t.Error("Point left of rect should be outside")
	}
}
