package bytecode

import "strings"

// StatusFlags is the VM's status register: a bit flag word. Only the three
// defined bits may ever be set; any other bit pattern is a bug in the
// executor, never a valid observed state (§3).
type StatusFlags byte

const (
	// ZERO names the all-clear value 0: the VM is running, not halted.
	ZERO StatusFlags = 0
	// HALTED is set once the VM has stopped stepping, clean or faulty.
	HALTED StatusFlags = 1 << 0
	// NEXT is set by WAITNEXT, the VM's sole advertised suspension point.
	// In this revision WAITNEXT is reserved and always faulting-halts, so
	// NEXT is defined but never actually observed set; it is kept because
	// status_stringify's contract names it explicitly.
	NEXT StatusFlags = 1 << 1
	// FAULT is set on a faulting halt. FAULT implies HALTED.
	FAULT StatusFlags = 1 << 2
)

// definedBits masks off anything not in {HALTED, NEXT, FAULT}.
const definedBits = HALTED | NEXT | FAULT

// Has reports whether all bits in mask are set in s.
func (s StatusFlags) Has(mask StatusFlags) bool {
	return s&mask == mask
}

// Valid reports whether s contains only defined bits.
func (s StatusFlags) Valid() bool {
	return s&^definedBits == 0
}

// statusNames lists the flag names in the fixed order Stringify joins
// them in: HALT, NEXT, FAULT. Note the printed name is "HALT", not
// "HALTED", matching the public stringifier contract in §4.6/§8.
var statusNames = []struct {
	bit  StatusFlags
	name string
}{
	{HALTED, "HALT"},
	{NEXT, "NEXT"},
	{FAULT, "FAULT"},
}

// Stringify renders a status value per the public debugger contract (§4.6):
// "ZERO" for the zero value, otherwise the set bits' names in the fixed
// order HALT, NEXT, FAULT joined by "|".
func Stringify(s StatusFlags) string {
	if s == ZERO {
		return "ZERO"
	}

	var parts []string
	for _, entry := range statusNames {
		if s.Has(entry.bit) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "|")
}

// String implements fmt.Stringer so a StatusFlags value prints the same way
// Stringify would.
func (s StatusFlags) String() string {
	return Stringify(s)
}
