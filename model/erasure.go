package model

import "fmt"

// ErasureSpecies names the redundancy encoding of a storage group.
type ErasureSpecies int

const (
	ErasureNone ErasureSpecies = iota
	ErasureBlock42
	ErasureMirror3DC
)

// String returns the configuration name of the erasure species.
func (e ErasureSpecies) String() string {
	switch e {
	case ErasureNone:
		return "none"
	case ErasureBlock42:
		return "block-4-2"
	case ErasureMirror3DC:
		return "mirror-3-dc"
	default:
		return "unknown"
	}
}

// ParseErasureSpecies parses the configuration name of an erasure species.
func ParseErasureSpecies(s string) (ErasureSpecies, error) {
	switch s {
	case "none":
		return ErasureNone, nil
	case "block-4-2":
		return ErasureBlock42, nil
	case "mirror-3-dc":
		return ErasureMirror3DC, nil
	default:
		return ErasureNone, fmt.Errorf("model: unknown erasure species %q", s)
	}
}

// FailRealm returns the failure realm a vdisk at the given domain
// coordinate belongs to. For mirror-3-dc, the realm is the vdisk's domain
// (datacenter) coordinate; other erasure species have no realm concept
// and FailRealm always returns 0.
func (e ErasureSpecies) FailRealm(domain uint32) uint32 {
	if e == ErasureMirror3DC {
		return domain
	}
	return 0
}
