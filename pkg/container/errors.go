// Package container parses the VQsXi packed-image envelope: a small fixed
// header (magic, width, height, color depth, bytecode length) wrapping a
// VQsX bytecode stream.
package container

import "fmt"

// magic is the required 5-byte header prefix identifying a VQsXi stream.
var magic = [5]byte{'V', 'Q', 's', 'X', 'i'}

// InvalidMagicError is returned when the header's first 5 bytes don't
// match the VQsXi magic.
type InvalidMagicError struct {
	Magic []byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("container: invalid VQsXi magic: % X", e.Magic)
}

// BadFieldError is returned when a header field other than the magic is
// truncated: the buffer ends partway through a fixed-width field.
type BadFieldError struct {
	Field string
}

func (e *BadFieldError) Error() string {
	return fmt.Sprintf("container: truncated header field %q", e.Field)
}

// BytecodeUnderflowError is returned when the header declares more
// bytecode than the buffer actually has remaining.
type BytecodeUnderflowError struct {
	Expected uint64
	Actual   uint64
}

func (e *BytecodeUnderflowError) Error() string {
	return fmt.Sprintf("container: bytecode underflow: expected %d bytes, got %d", e.Expected, e.Actual)
}
