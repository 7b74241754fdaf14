package ids

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity prefixes keep ids opaque but recognizable in logs and dumps.
const (
	PrefixUser    = "u"
	PrefixProduct = "p"
	PrefixOrder   = "o"
	PrefixCourse  = "c"
	PrefixTip     = "t"
)

// Generator produces unique opaque ids per entity kind.
type Generator interface {
	New(prefix string) string
}

// UUIDGenerator is the production Generator built on random UUIDs.
type UUIDGenerator struct{}

// New returns a fresh prefixed id, e.g. "u_9f1c2d...".
func (UUIDGenerator) New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return raw
	}
	return fmt.Sprintf("%s_%s", prefix, raw)
}
