package primitives

// Kind is the capability tag a container reports for type-identity checks.
// Containers that emulate a built-in capability report the generic tag
// (KindMapping or KindSequence) while emulation is enabled, and their own
// distinct tag otherwise. Callers decide "is-a" by comparing Kinds.
type Kind int

const (
	// KindMapping is the generic key/value mapping capability.
	KindMapping Kind = iota

	// KindSequence is the generic ordered sequence capability.
	KindSequence

	// KindConstantDict identifies a write-once mapping.
	KindConstantDict

	// KindNamedTuple identifies a fixed named record.
	KindNamedTuple

	// KindLockedList identifies a flag-gated list.
	KindLockedList

	// KindRLockedList identifies a reentrant owner-locked list.
	KindRLockedList
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "MAPPING"
	case KindSequence:
		return "SEQUENCE"
	case KindConstantDict:
		return "CONSTANT_DICT"
	case KindNamedTuple:
		return "NAMED_TUPLE"
	case KindLockedList:
		return "LOCKED_LIST"
	case KindRLockedList:
		return "RLOCKED_LIST"
	default:
		return "UNKNOWN_KIND"
	}
}

// IsGeneric reports whether k is one of the built-in capability tags
// rather than a container-specific one.
func (k Kind) IsGeneric() bool {
	return k == KindMapping || k == KindSequence
}
