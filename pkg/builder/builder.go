package builder

import (
	"encoding/binary"
	"math"

	"github.com/vqsxvm/vqsx/pkg/bytecode"
)

// Builder is an append-only VQsX bytecode emitter. It holds a growing byte
// buffer and, like bufio.Writer, a sticky error: once any call fails its
// range check the error is latched in err and every subsequent opcode call
// becomes a no-op until the caller calls Reset (reading Err does not clear
// it). This mirrors
// the errcode-on-the-struct pattern the reference VM uses for its dispatch
// loop, applied here to a linear emit sequence instead.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	buf []byte
	err error
}

// New returns an empty Builder ready to emit.
func New() *Builder {
	return &Builder{}
}

// Err returns the first range error encountered, if any. Once set it is
// never cleared except by Reset.
func (b *Builder) Err() error {
	return b.err
}

// Reset empties the buffer and clears any latched error, returning the
// builder to its just-constructed state.
func (b *Builder) Reset() *Builder {
	b.buf = b.buf[:0]
	b.err = nil
	return b
}

// Dump returns a copy of the buffer built so far. The builder remains
// usable afterward; callers may continue to append, and mutating the
// returned slice does not affect the builder's internal state.
func (b *Builder) Dump() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Len returns the number of bytes emitted so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

func (b *Builder) emitOpcode(op bytecode.Opcode) {
	b.buf = append(b.buf, byte(op))
}

func (b *Builder) emitU8(v byte) {
	b.buf = append(b.buf, v)
}

func (b *Builder) emitI64(v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) emitF64(v float64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) checkU8(op bytecode.Opcode, field string, v int) bool {
	if b.err != nil {
		return false
	}
	if v < 0 || v > 0xFF {
		b.err = &RangeError{Opcode: op.String(), Field: field, Value: int64(v), Min: 0, Max: 0xFF}
		return false
	}
	return true
}

// --- No-operand instructions ---

// Null appends the NULL opcode byte. Its runtime effect depends on the
// executor's configured null-opcode policy; the builder just emits the byte.
func (b *Builder) Null() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.NULL)
	return b
}

// Center appends CENTER.
func (b *Builder) Center() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.CENTER)
	return b
}

// Origin appends ORIGIN.
func (b *Builder) Origin() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ORIGIN)
	return b
}

// RotateOrigin appends ROTATEORIGIN.
func (b *Builder) RotateOrigin() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ROTATEORIGIN)
	return b
}

// StatePush appends STPUSH.
func (b *Builder) StatePush() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.STPUSH)
	return b
}

// StatePop appends STPOP.
func (b *Builder) StatePop() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.STPOP)
	return b
}

// PenStatePush appends PSPUSH.
func (b *Builder) PenStatePush() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.PSPUSH)
	return b
}

// PenStatePop appends PSPOP.
func (b *Builder) PenStatePop() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.PSPOP)
	return b
}

// Initialize appends INITIALIZE.
func (b *Builder) Initialize() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.INITIALIZE)
	return b
}

// Halt appends HALT.
func (b *Builder) Halt() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.HALT)
	return b
}

// Nop appends the explicit NOOP opcode (0x21). Use Null with nullnop
// semantics if a null-policy-driven no-op is intended instead; this always
// emits the always-a-no-op instruction regardless of policy.
func (b *Builder) Nop() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.NOOP)
	return b
}

// --- Reserved opcodes (emit only; the executor faulting-halts on these) ---

// Jump appends the reserved JUMP opcode.
func (b *Builder) Jump() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.JUMP)
	return b
}

// Call appends the reserved CALL opcode.
func (b *Builder) Call() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.CALL)
	return b
}

// JumpIPC appends the reserved JUMPIPC opcode.
func (b *Builder) JumpIPC() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.JUMPIPC)
	return b
}

// CallIPC appends the reserved CALLIPC opcode.
func (b *Builder) CallIPC() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.CALLIPC)
	return b
}

// JumpMST appends the reserved JUMPMST opcode.
func (b *Builder) JumpMST() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.JUMPMST)
	return b
}

// CallMST appends the reserved CALLMST opcode.
func (b *Builder) CallMST() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.CALLMST)
	return b
}

// Return appends the reserved RETURN opcode.
func (b *Builder) Return() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.RETURN)
	return b
}

// WaitNext appends the reserved WAITNEXT opcode.
func (b *Builder) WaitNext() *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.WAITNEXT)
	return b
}

// --- u8-operand instructions ---

// SetOrigin appends SETORIGIN with the given origin-corner value.
func (b *Builder) SetOrigin(origin bytecode.SetOriginValues) *Builder {
	if !b.checkU8(bytecode.SETORIGIN, "origin", int(origin)) {
		return b
	}
	b.emitOpcode(bytecode.SETORIGIN)
	b.emitU8(byte(origin))
	return b
}

// Brightness appends BRIGHTNESS with a 0-255 level.
func (b *Builder) Brightness(level int) *Builder {
	if !b.checkU8(bytecode.BRIGHTNESS, "level", level) {
		return b
	}
	b.emitOpcode(bytecode.BRIGHTNESS)
	b.emitU8(byte(level))
	return b
}

// Scale appends SCALE with a 0-255 factor.
func (b *Builder) Scale(factor int) *Builder {
	if !b.checkU8(bytecode.SCALE, "factor", factor) {
		return b
	}
	b.emitOpcode(bytecode.SCALE)
	b.emitU8(byte(factor))
	return b
}

// Color appends COLOR with a palette index. The index is not validated
// against the defined palette here; out-of-range indices are a well
// defined runtime concept (they resolve to BRED via bytecode.MapColor) and
// are not a builder-level range error.
func (b *Builder) Color(index bytecode.Colors) *Builder {
	if !b.checkU8(bytecode.COLOR, "index", int(index)) {
		return b
	}
	b.emitOpcode(bytecode.COLOR)
	b.emitU8(byte(index))
	return b
}

// RotateSetOrigin appends ROTATESETORIGIN with the given origin-corner value.
func (b *Builder) RotateSetOrigin(origin bytecode.SetOriginValues) *Builder {
	if !b.checkU8(bytecode.ROTATESETORIGIN, "origin", int(origin)) {
		return b
	}
	b.emitOpcode(bytecode.ROTATESETORIGIN)
	b.emitU8(byte(origin))
	return b
}

// --- i64-operand instructions ---

// Forward appends FORWARD with a signed distance.
func (b *Builder) Forward(distance int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.FORWARD)
	b.emitI64(distance)
	return b
}

// Backward appends BACKWARDS with a signed distance.
func (b *Builder) Backward(distance int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.BACKWARDS)
	b.emitI64(distance)
	return b
}

// DrawForward appends DRAWFORWARD with a signed distance.
func (b *Builder) DrawForward(distance int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.DRAWFORWARD)
	b.emitI64(distance)
	return b
}

// DrawBackward appends DRAWBACKWARDS with a signed distance.
func (b *Builder) DrawBackward(distance int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.DRAWBACKWARDS)
	b.emitI64(distance)
	return b
}

// --- i64,i64-operand instructions ---

// Position appends POSITION with an absolute target x, y.
func (b *Builder) Position(x, y int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.POSITION)
	b.emitI64(x)
	b.emitI64(y)
	return b
}

// Draw appends DRAW with an x, y delta.
func (b *Builder) Draw(dx, dy int64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.DRAW)
	b.emitI64(dx)
	b.emitI64(dy)
	return b
}

// --- f64-operand instructions ---

// RotateDeg appends ROTATEDEG with a degrees value, bit-exact IEEE 754
// binary64.
func (b *Builder) RotateDeg(degrees float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ROTATEDEG)
	b.emitF64(degrees)
	return b
}

// RotateRad appends ROTATERAD with a radians value.
func (b *Builder) RotateRad(radians float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ROTATERAD)
	b.emitF64(radians)
	return b
}

// RotateRDeg appends ROTATERDEG, a counter-clockwise degrees rotation.
func (b *Builder) RotateRDeg(degrees float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ROTATERDEG)
	b.emitF64(degrees)
	return b
}

// RotateRRad appends ROTATERRAD, a counter-clockwise radians rotation.
func (b *Builder) RotateRRad(radians float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emitOpcode(bytecode.ROTATERRAD)
	b.emitF64(radians)
	return b
}
