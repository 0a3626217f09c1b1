package deploy

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders bytes with a 1024 base and at most one decimal, as
// in "0 B", "512 B", "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
