// =============================================================================
// LIS Ticket Tracker - Category Taxonomy
// =============================================================================
//
// This module defines the fixed production category taxonomy and the rules
// that classify a door ticket into it. Classification is a pure function
// of the frame code, the door size string, and the quantity: no I/O, no
// state, so the ledger can call it both to record and to reverse deltas.
//
// TAXONOMY:
//   Five base families (BF bifold, MC molded core, HC hollow core,
//   SC flush solid, MS solid core) plus an "8/0" oversize variant of MC,
//   each with five quantity buckets (01, 05, 10, 15, 20) and a bare key
//   for quantities above 20: 36 keys total.
//
// =============================================================================

package taxonomy

import (
	"strconv"
	"strings"
)

// Base family prefixes.
const (
	Bifold     = "BF"
	MoldedCore = "MC"
	HollowCore = "HC"
	FlushSolid = "SC"
	SolidCore  = "MS"
)

// OversizeSuffix is appended to molded-core keys for doors taller than
// 90 inches ("8/0" doors).
const OversizeSuffix = " 8/0"

// oversizeHeight is the height in inches above which a door counts as 8/0.
const oversizeHeight = 90.0

// bucketSuffixes in ascending quantity order. Quantities above 20 use the
// bare family prefix.
var bucketSuffixes = []string{"01", "05", "10", "15", "20"}

// allKeys is the immutable set of category keys, built once at package init.
var allKeys = buildKeys()

func buildKeys() []string {
	families := []string{Bifold, MoldedCore, HollowCore, FlushSolid, SolidCore}

	var keys []string
	appendVariants := func(suffix string) {
		for _, family := range families {
			keys = append(keys, family+suffix)
		}
		keys = append(keys, MoldedCore+suffix+OversizeSuffix)
	}

	appendVariants("")
	for _, suffix := range bucketSuffixes {
		appendVariants(suffix)
	}
	return keys
}

// Keys returns a copy of the full category key set.
func Keys() []string {
	keys := make([]string, len(allKeys))
	copy(keys, allKeys)
	return keys
}

// IsValidKey reports whether key is a member of the fixed taxonomy.
func IsValidKey(key string) bool {
	for _, k := range allKeys {
		if k == key {
			return true
		}
	}
	return false
}

// =============================================================================
// CLASSIFICATION RULES
// =============================================================================
//
// Rules are evaluated in strict priority order; the first match wins.
// The bifold check inspects the third character, all others the first.

func isBifold(frameCode string) bool {
	if len(frameCode) < 3 {
		return false
	}
	switch frameCode[2] {
	case 'F', 'J', 'W':
		return true
	}
	return false
}

func isMoldedCore(frameCode string) bool {
	return frameCode != "" && (frameCode[0] == 'M' || frameCode[0] == 'K')
}

func isHollowCore(frameCode string) bool {
	return frameCode != "" && frameCode[0] == 'H'
}

func isFlushSolid(frameCode string) bool {
	if frameCode == "" {
		return false
	}
	switch frameCode[0] {
	case 'J', 'P', 'F':
		return true
	}
	return false
}

func isSolidCore(frameCode string) bool {
	return frameCode != "" && frameCode[0] == 'G'
}

// IsOversize reports whether the door size string describes a door taller
// than 90 inches. The expected format is "<width> X <height>" with a
// case-insensitive separator. Anything that does not parse is treated as
// not oversize; this never fails.
func IsOversize(doorSize string) bool {
	parts := strings.Split(strings.ToUpper(doorSize), "X")
	if len(parts) != 2 {
		return false
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return false
	}
	return height > oversizeHeight
}

// Bucket returns the category key for a family prefix at the given
// quantity: "01" for exactly one door, then "05", "10", "15", "20" for
// the 2-5, 6-10, 11-15 and 16-20 ranges, and the bare prefix above 20.
// The oversize suffix is appended after bucketing.
func Bucket(prefix string, quantity int, oversize bool) string {
	var key string
	switch {
	case quantity == 1:
		key = prefix + "01"
	case quantity >= 2 && quantity <= 5:
		key = prefix + "05"
	case quantity >= 6 && quantity <= 10:
		key = prefix + "10"
	case quantity >= 11 && quantity <= 15:
		key = prefix + "15"
	case quantity >= 16 && quantity <= 20:
		key = prefix + "20"
	default:
		key = prefix
	}

	if oversize {
		key += OversizeSuffix
	}
	return key
}

// Categorize derives the category key for a ticket. The boolean is false
// when no rule matches the frame code; such tickets are still recorded in
// history but contribute to no category total.
func Categorize(frameCode, doorSize string, quantity int) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(frameCode))

	switch {
	case isBifold(code):
		return Bucket(Bifold, quantity, false), true
	case isMoldedCore(code):
		return Bucket(MoldedCore, quantity, IsOversize(doorSize)), true
	case isHollowCore(code):
		return Bucket(HollowCore, quantity, false), true
	case isFlushSolid(code):
		return Bucket(FlushSolid, quantity, false), true
	case isSolidCore(code):
		return Bucket(SolidCore, quantity, false), true
	}
	return "", false
}
