package download

import "fmt"

var byteUnits = []struct {
	factor float64
	suffix string
}{
	{1 << 50, "PB"},
	{1 << 40, "TB"},
	{1 << 30, "GB"},
	{1 << 20, "MB"},
	{1 << 10, "kB"},
	{1, "B"},
}

// HumanizeBytes formats a byte count with binary (1024-based) units
// and two decimals. The value 1 renders as "1 B" with no decimals.
func HumanizeBytes(n float64) string {
	return HumanizeBytesPrec(n, 2)
}

func HumanizeBytesPrec(n float64, precision int) string {
	if n == 1 {
		return "1 B"
	}
	factor, suffix := 1.0, "B"
	for _, unit := range byteUnits {
		if n >= unit.factor {
			factor, suffix = unit.factor, unit.suffix
			break
		}
	}
	return fmt.Sprintf("%.*f %s", precision, n/factor, suffix)
}
