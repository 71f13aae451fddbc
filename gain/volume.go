// SPDX-License-Identifier: EPL-2.0

package gain

import "math"

const (
	// MinDB is the level treated as silence by the percentage helpers.
	MinDB = -60.0
	// MaxDB is unity gain.
	MaxDB = 0.0
)

// Clamp01 limits v to [0, 1]. NaN becomes 0.
func Clamp01(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// DBToLinear converts decibels to an amplitude multiplier. Anything at or
// below MinDB is silence.
func DBToLinear(db float64) float32 {
	if db <= MinDB {
		return 0
	}
	return float32(math.Pow(10, db/20))
}

// LinearToDB converts an amplitude multiplier to decibels, floored at MinDB.
func LinearToDB(v float32) float64 {
	if v <= 0 {
		return MinDB
	}
	return math.Max(20*math.Log10(float64(v)), MinDB)
}

// DBToPercentage maps [MinDB, MaxDB] onto [0, 100].
func DBToPercentage(db float64) float64 {
	db = math.Min(math.Max(db, MinDB), MaxDB)
	return (db - MinDB) / (MaxDB - MinDB) * 100
}

// PercentageToDB maps [0, 100] onto [MinDB, MaxDB].
func PercentageToDB(pct float64) float64 {
	pct = math.Min(math.Max(pct, 0), 100)
	return pct/100*(MaxDB-MinDB) + MinDB
}

// Label describes a linear volume in words for display. The thresholds
// apply to the perceived level, DBToPercentage of the volume in decibels.
func Label(v float32) string {
	pct := DBToPercentage(LinearToDB(Clamp01(v)))
	switch {
	case pct < 1:
		return "Muted"
	case pct < 20:
		return "Very Quiet"
	case pct < 50:
		return "Quiet"
	case pct < 80:
		return "Normal"
	default:
		return "Loud"
	}
}
