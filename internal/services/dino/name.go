package dino

import (
	"strings"

	"github.com/kaylobb/dinobot/internal/fragments"
)

// dinoName derives a display name from the three part paths by fixed-offset
// substring extraction on the suffix-stripped stems. Different part tuples
// can produce the same name; name uniqueness is enforced separately at
// save time.
func dinoName(bodyPath, mouthPath, eyesPath string) string {
	body := strings.ReplaceAll(fragments.Stem(bodyPath), "_b", "")
	mouth := strings.ReplaceAll(fragments.Stem(mouthPath), "_m", "")
	eyes := strings.ReplaceAll(fragments.Stem(eyesPath), "_e", "")

	bodyEnd := len(body)
	if bodyEnd > 3 {
		bodyEnd = 3
	}

	return body[:bodyEnd] + mouth[tailStart(3, len(mouth)):] + eyes[tailStart(6, len(eyes)):]
}

// tailStart clamps the fixed offset so at least the last three characters
// of a part stem survive, and short stems survive whole
func tailStart(offset, length int) int {
	start := length - 3
	if start > offset {
		start = offset
	}
	if start < 0 {
		start = 0
	}
	return start
}
