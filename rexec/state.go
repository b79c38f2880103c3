package rexec

// CloneState describes whether the running process image is a sealed
// in-memory clone of itself.
type CloneState int

// Clone states. Indeterminate means the running image could not be
// inspected at all; it is as fatal as a confirmed unsafe state and is
// never treated as NotCloned.
const (
	Indeterminate CloneState = iota
	NotCloned
	AlreadyCloned
)

var stateToString = []string{
	"indeterminate",
	"not cloned",
	"already cloned",
}

func (s CloneState) String() string {
	if s >= Indeterminate && s <= AlreadyCloned {
		return stateToString[s]
	}
	return "unknown"
}
