package utils

// StringHash mixes a string into a 32 bit value. Stable across runs, so
// anything keyed on it (debug shades, dedup tables) is reproducible.
func StringHash(str string, initial uint32) uint32 {
	hash := initial
	for _, c := range []byte(str) {
		hash = (hash << 7) - hash + uint32(c)
	}
	return hash
}
