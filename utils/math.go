package utils

import (
	"math"
)

// The archive stores wall angles in "binary angle" units where 32767 is a
// half turn. Converted once at decode time; all runtime math uses radians.

func BinaryAngleToRadians(angle int16) float32 {
	return float32(angle) * math.Pi / 32767.0
}

func BinaryAngleToDegrees(angle int16) float32 {
	return float32(angle) * 180.0 / 32767.0
}

func DegreesToBinaryAngle(angle float32) int16 {
	return int16(angle * 32767.0 / 180.0)
}

func RadiansToBinaryAngle(angle float32) int16 {
	return int16(angle * 32767.0 / math.Pi)
}

func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180.0
}

func RadToDeg(rad float32) float32 {
	return rad * 180.0 / math.Pi
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func Clamp(v, lower, upper float32) float32 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

func ClampInt(v, lower, upper int) int {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
