package calendar

import "github.com/huangsam/gitlocalstats/schema"

// Intensity thresholds, inclusive lower bounds.
const (
	LightThreshold  = 1
	MediumThreshold = 5
	HighThreshold   = 10
)

// Intensity buckets a day count. Negative counts never occur in a table and map to empty.
func Intensity(count int) schema.Intensity {
	switch {
	case count >= HighThreshold:
		return schema.HighIntensity
	case count >= MediumThreshold:
		return schema.MediumIntensity
	case count >= LightThreshold:
		return schema.LightIntensity
	default:
		return schema.EmptyIntensity
	}
}
