package geom

import "math"

// NormAngle folds an angle that is at most one turn out of range back into
// [0, 360).
func NormAngle(deg float64) float64 {
	if deg >= 360 {
		deg -= 360
	} else if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleBetween returns the direction from src to dst in degrees.
func AngleBetween(src, dst Vec2) float64 {
	return NormAngle(math.Atan2(dst.Y-src.Y, dst.X-src.X) * 180 / math.Pi)
}

// IsShortRotCCW reports whether the shortest rotation from srcDeg to dstDeg
// is counter-clockwise. A half turn counts as counter-clockwise.
func IsShortRotCCW(srcDeg, dstDeg float64) bool {
	var pos, neg float64
	if dstDeg > srcDeg {
		pos = dstDeg - srcDeg
		neg = srcDeg + (360 - dstDeg)
	} else {
		pos = 360 - srcDeg + dstDeg
		neg = srcDeg - dstDeg
	}
	return pos <= neg
}
