package table

import (
	"strconv"
	"strings"
)

// naTokens are the cell values read as missing, matching common CSV tooling.
var naTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "<NA>": {},
	"1.#IND": {}, "-1.#IND": {}, "1.#QNAN": {}, "-1.#QNAN": {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(s string) bool {
	_, ok := naTokens[strings.TrimSpace(s)]
	return ok
}

// ParseInt parses a base-10 integer cell.
func ParseInt(s string) (int64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumber parses a decimal cell. Infinities are rejected; NaN spellings
// never reach here because IsMissing catches them first.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	switch strings.ToLower(strings.TrimLeft(raw, "+-")) {
	case "inf", "infinity", "nan":
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
