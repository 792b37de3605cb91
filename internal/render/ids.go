package render

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewJobID returns "<unix millis>-<6 base36 chars>". The id doubles as the output file stem.
func NewJobID(now time.Time) string {
	var suffix [6]byte
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix[:])
}
