package cache

// State is the lifecycle position of a table's cache entry.
//
//	Empty -> Valid                   first load or rebuild succeeded
//	Valid -> Invalid                 validation failed
//	Invalid -> Rebuilding -> Valid   full re-read and update
//	Rebuilding -> Invalid            rebuild failed
//	any -> Empty                     entry absent or malformed on load
type State string

const (
	StateEmpty      State = "empty"
	StateValid      State = "valid"
	StateInvalid    State = "invalid"
	StateRebuilding State = "rebuilding"
)

var transitions = map[State][]State{
	StateEmpty:      {StateValid, StateInvalid, StateRebuilding},
	StateValid:      {StateValid, StateInvalid},
	StateInvalid:    {StateRebuilding},
	StateRebuilding: {StateValid, StateInvalid},
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	if next == StateEmpty {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s State) String() string {
	return string(s)
}
