package dataset

import (
	"strconv"
	"strings"
)

// naTokens are cell contents treated as missing, in addition to blanks.
var naTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "#N/A": {},
	"null": {}, "NULL": {}, "None": {}, "-": {},
}

// isMissing reports whether a trimmed cell counts as a missing value.
func isMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := naTokens[s]
	return ok
}

// parseNumber parses s with the given separators. A zero decimal separator
// auto-detects per value: the right-most of ',' and '.' is the decimal mark.
func parseNumber(s string, dec, thou rune) (float64, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
