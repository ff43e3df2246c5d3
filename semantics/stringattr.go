package semantics

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// StringAttributeKind tags one run annotation on a string field.
type StringAttributeKind uint8

const (
	// SpellOut asks assistive technology to read the run character by
	// character.
	SpellOut StringAttributeKind = iota
	// Locale overrides the pronunciation locale for the run.
	Locale
)

// StringAttribute annotates the half-open byte range [Start, End) of the
// string it accompanies.
type StringAttribute struct {
	Start int32
	End   int32
	Kind  StringAttributeKind
	// LocaleID is only meaningful for Kind == Locale.
	LocaleID string
}

// attributesHash folds an attribute-run list into one content hash so a
// node can detect identity changes of the composite value with a single
// comparison. The empty list hashes to 0.
func attributesHash(attrs []StringAttribute) uint64 {
	if len(attrs) == 0 {
		return 0
	}
	d := xxhash.New()
	var buf [9]byte
	for _, a := range attrs {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(a.Start))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(a.End))
		buf[8] = byte(a.Kind)
		d.Write(buf[:])
		d.WriteString(a.LocaleID)
	}
	return d.Sum64()
}
