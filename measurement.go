package goshapes

import "math"

// Drawing units are inches. EMU (English Metric Units) are what OOXML
// stores: 1 inch = 914400 EMU, 1 point = 12700 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// PointsPerInch converts outline widths and font sizes to drawing units.
	PointsPerInch = 72
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// InchToEMU converts drawing units to EMU, rounding to the nearest EMU.
func InchToEMU(n float64) int64 {
	return clampEMU(math.Round(n * emuPerInch))
}

// PointToEMU converts points to EMU.
func PointToEMU(n float64) int64 {
	return clampEMU(math.Round(n * emuPerPoint))
}

// EMUToInch converts EMU to drawing units.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
