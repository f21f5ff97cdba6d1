// Package vm implements the VQsX executor: a fetch-decode-dispatch loop
// over a bytecode buffer that drives a set of registered Observers and
// exposes no geometric state of its own; position, heading, and pen state
// live entirely on the observer side.
package vm

import (
	"encoding/binary"
	"math"

	"github.com/vqsxvm/vqsx/pkg/bytecode"
)

// NullPolicy selects how the executor treats opcode 0x00 (NULL). It is
// fixed for the lifetime of an Executor, chosen at construction; there is
// no way to change it afterward.
type NullPolicy int

const (
	// NullNoop treats NULL as a no-op: execution continues to the next
	// instruction.
	NullNoop NullPolicy = iota
	// NullHalt treats NULL as a clean halt.
	NullHalt
	// NullFault treats NULL as a faulting halt.
	NullFault
)

// haltCause records internally why the executor halted. It is not exported
// and no observer receives it (LoggingObserver logs only Halt's faulty
// flag). It is never surfaced as a new STATUS bit: §3 fixes the defined
// bits at HALTED/NEXT/FAULT, and this module doesn't add a fourth.
type haltCause int

const (
	haltNone haltCause = iota
	haltCleanExplicit
	haltCleanEndOfStream
	haltFaultEndOfStreamMidInst
	haltFaultUnknownOpcode
	haltFaultReservedOpcode
	haltFaultNullPolicy
)

// Executor runs a VQsX bytecode buffer. It is not safe for concurrent use:
// per §5, it is strictly single-threaded and synchronous.
type Executor struct {
	policy NullPolicy

	buf []byte
	mst int // memory start: the base offset execution begins from
	ipc int // instruction pointer, a byte offset into buf

	status StatusFlagsHolder
	cause  haltCause

	observers map[Observer]struct{}
}

// StatusFlagsHolder is a thin alias so this package's exported Status
// method returns the same flag type bytecode's stringifier understands.
type StatusFlagsHolder = bytecode.StatusFlags

// New constructs an Executor with the given null-opcode policy. It starts
// unloaded: Load must be called before Step/Run will do anything useful.
func New(policy NullPolicy) *Executor {
	return &Executor{
		policy:    policy,
		observers: make(map[Observer]struct{}),
	}
}

// Register adds obs to the observer set. Registration is idempotent: an
// already-registered observer is a no-op.
func (e *Executor) Register(obs Observer) {
	e.observers[obs] = struct{}{}
}

// Deregister removes obs from the observer set and reports whether it had
// been registered.
func (e *Executor) Deregister(obs Observer) bool {
	if _, ok := e.observers[obs]; !ok {
		return false
	}
	delete(e.observers, obs)
	return true
}

// snapshotObservers copies the current observer set so notification is
// stable even if an observer deregisters itself mid-notification (the one
// re-entrant mutation the protocol permits).
func (e *Executor) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(e.observers))
	for obs := range e.observers {
		out = append(out, obs)
	}
	return out
}

// Load copies buf into the executor as its bytecode and resets execution
// state. After Load the executor owns its own copy; mutating the caller's
// slice afterward has no effect on the VM.
func (e *Executor) Load(buf []byte) {
	e.buf = append([]byte(nil), buf...)
	e.resetState()
}

// Reset restores IPC and MST to zero and clears FAULT/HALTED, then notifies
// Reset on every registered observer. The loaded bytecode itself is
// unaffected; Reset does not reload or discard it.
func (e *Executor) Reset() {
	e.resetState()
	for _, obs := range e.snapshotObservers() {
		obs.Reset()
	}
}

func (e *Executor) resetState() {
	e.mst = 0
	e.ipc = 0
	e.status = bytecode.ZERO
	e.cause = haltNone
}

// Status returns the current STATUS register value.
func (e *Executor) Status() bytecode.StatusFlags {
	return e.status
}

// IPC returns the current instruction pointer, a byte offset into the
// loaded bytecode.
func (e *Executor) IPC() int {
	return e.ipc
}

// MST returns the current memory-start offset.
func (e *Executor) MST() int {
	return e.mst
}

func (e *Executor) halted() bool {
	return e.status.Has(bytecode.HALTED)
}

func (e *Executor) notifyOnStep(post bool) {
	for _, obs := range e.snapshotObservers() {
		obs.OnStep(post)
	}
}

func (e *Executor) cleanHalt(cause haltCause) {
	e.status = bytecode.HALTED
	e.cause = cause
	for _, obs := range e.snapshotObservers() {
		obs.Halt(false)
	}
}

func (e *Executor) faultingHalt(cause haltCause) {
	e.status = bytecode.HALTED | bytecode.FAULT
	e.cause = cause
	for _, obs := range e.snapshotObservers() {
		obs.Halt(true)
	}
}

// Step runs the fetch-decode-dispatch algorithm exactly once (§4.3). If the
// VM is already halted, Step returns immediately without notifying
// anything.
func (e *Executor) Step() {
	if e.halted() {
		return
	}

	e.notifyOnStep(false)

	if e.ipc >= len(e.buf) {
		e.cleanHalt(haltCleanEndOfStream)
		return
	}

	raw := e.buf[e.ipc]
	e.ipc++
	for _, obs := range e.snapshotObservers() {
		obs.FetchInst(raw)
	}

	op := bytecode.Opcode(raw)
	if !op.Valid() {
		e.faultingHalt(haltFaultUnknownOpcode)
		return
	}

	for _, obs := range e.snapshotObservers() {
		obs.FetchDecodedInst(op)
	}

	switch {
	case op == bytecode.NULL:
		switch e.policy {
		case NullHalt:
			e.cleanHalt(haltCleanExplicit)
			return
		case NullFault:
			e.faultingHalt(haltFaultNullPolicy)
			return
		case NullNoop:
			// fall through to end-of-step bookkeeping below
		}
	case op == bytecode.NOOP:
		// explicit no-op, always does nothing regardless of policy
	case op == bytecode.HALT:
		e.cleanHalt(haltCleanExplicit)
		return
	case op.Reserved():
		e.faultingHalt(haltFaultReservedOpcode)
		return
	default:
		if !e.dispatch(op) {
			e.faultingHalt(haltFaultEndOfStreamMidInst)
			return
		}
	}

	if e.ipc >= len(e.buf) {
		e.cleanHalt(haltCleanEndOfStream)
		return
	}

	e.notifyOnStep(true)
}

// Run resets state, sets STATUS to ZERO, then steps until HALTED is set.
func (e *Executor) Run() {
	e.resetState()
	for !e.halted() {
		e.Step()
	}
}

// dispatch reads op's operand block and emits its observer event. It
// returns false on operand underflow, in which case the caller is
// responsible for the faulting halt.
func (e *Executor) dispatch(op bytecode.Opcode) bool {
	kind, ok := op.Signature()
	if !ok {
		return false
	}
	size := kind.Size()
	if e.ipc+size > len(e.buf) {
		return false
	}
	operand := e.buf[e.ipc : e.ipc+size]
	e.ipc += size

	switch op {
	case bytecode.CENTER:
		e.notifyCenter()
	case bytecode.ORIGIN:
		e.notifyOrigin()
	case bytecode.ROTATEORIGIN:
		e.notifyRotateOrigin()
	case bytecode.STPUSH:
		e.notifyStatePush()
	case bytecode.STPOP:
		e.notifyStatePop()
	case bytecode.PSPUSH:
		e.notifyPenStatePush()
	case bytecode.PSPOP:
		e.notifyPenStatePop()
	case bytecode.INITIALIZE:
		e.notifyInitialize()
	case bytecode.SETORIGIN:
		e.notifySetOrigin(bytecode.SetOriginValues(operand[0]))
	case bytecode.BRIGHTNESS:
		e.notifyBrightness(int(operand[0]))
	case bytecode.SCALE:
		e.notifyScale(int(operand[0]))
	case bytecode.COLOR:
		e.notifyColor(bytecode.Colors(operand[0]))
	case bytecode.ROTATESETORIGIN:
		e.notifyRotateSetOrigin(bytecode.SetOriginValues(operand[0]))
	case bytecode.FORWARD:
		e.notifyForward(readI64(operand))
	case bytecode.BACKWARDS:
		e.notifyBackward(readI64(operand))
	case bytecode.DRAWFORWARD:
		e.notifyDrawForward(readI64(operand))
	case bytecode.DRAWBACKWARDS:
		e.notifyDrawBackward(readI64(operand))
	case bytecode.POSITION:
		x := readI64(operand[0:8])
		y := readI64(operand[8:16])
		e.notifyPosition(x, y)
	case bytecode.DRAW:
		dx := readI64(operand[0:8])
		dy := readI64(operand[8:16])
		e.notifyDraw(dx, dy)
	case bytecode.ROTATEDEG:
		e.notifyRotateDeg(readF64(operand))
	case bytecode.ROTATERAD:
		e.notifyRotateRad(readF64(operand))
	case bytecode.ROTATERDEG:
		e.notifyRotateRDeg(readF64(operand))
	case bytecode.ROTATERRAD:
		e.notifyRotateRRad(readF64(operand))
	}
	return true
}

func readI64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func readF64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func (e *Executor) notifyCenter() {
	for _, obs := range e.snapshotObservers() {
		obs.Center()
	}
}

func (e *Executor) notifyOrigin() {
	for _, obs := range e.snapshotObservers() {
		obs.Origin()
	}
}

func (e *Executor) notifyRotateOrigin() {
	for _, obs := range e.snapshotObservers() {
		obs.RotateOrigin()
	}
}

func (e *Executor) notifyStatePush() {
	for _, obs := range e.snapshotObservers() {
		obs.StatePush()
	}
}

func (e *Executor) notifyStatePop() {
	for _, obs := range e.snapshotObservers() {
		obs.StatePop()
	}
}

func (e *Executor) notifyPenStatePush() {
	for _, obs := range e.snapshotObservers() {
		obs.PenStatePush()
	}
}

func (e *Executor) notifyPenStatePop() {
	for _, obs := range e.snapshotObservers() {
		obs.PenStatePop()
	}
}

func (e *Executor) notifyInitialize() {
	for _, obs := range e.snapshotObservers() {
		obs.Initialize()
	}
}

func (e *Executor) notifySetOrigin(v bytecode.SetOriginValues) {
	for _, obs := range e.snapshotObservers() {
		obs.SetOrigin(v)
	}
}

func (e *Executor) notifyBrightness(level int) {
	for _, obs := range e.snapshotObservers() {
		obs.Brightness(level)
	}
}

func (e *Executor) notifyScale(factor int) {
	for _, obs := range e.snapshotObservers() {
		obs.Scale(factor)
	}
}

func (e *Executor) notifyColor(index bytecode.Colors) {
	rgb := bytecode.MapColor(int(index))
	for _, obs := range e.snapshotObservers() {
		obs.Color(index, rgb)
	}
}

func (e *Executor) notifyRotateSetOrigin(v bytecode.SetOriginValues) {
	for _, obs := range e.snapshotObservers() {
		obs.RotateSetOrigin(v)
	}
}

func (e *Executor) notifyForward(dist int64) {
	for _, obs := range e.snapshotObservers() {
		obs.Forward(dist)
	}
}

func (e *Executor) notifyBackward(dist int64) {
	for _, obs := range e.snapshotObservers() {
		obs.Backward(dist)
	}
}

func (e *Executor) notifyDrawForward(dist int64) {
	for _, obs := range e.snapshotObservers() {
		obs.DrawForward(dist)
	}
}

func (e *Executor) notifyDrawBackward(dist int64) {
	for _, obs := range e.snapshotObservers() {
		obs.DrawBackward(dist)
	}
}

func (e *Executor) notifyPosition(x, y int64) {
	for _, obs := range e.snapshotObservers() {
		obs.Position(x, y)
	}
}

func (e *Executor) notifyDraw(dx, dy int64) {
	for _, obs := range e.snapshotObservers() {
		obs.Draw(dx, dy)
	}
}

func (e *Executor) notifyRotateDeg(deg float64) {
	for _, obs := range e.snapshotObservers() {
		obs.RotateDeg(deg)
	}
}

func (e *Executor) notifyRotateRad(rad float64) {
	for _, obs := range e.snapshotObservers() {
		obs.RotateRad(rad)
	}
}

func (e *Executor) notifyRotateRDeg(deg float64) {
	for _, obs := range e.snapshotObservers() {
		obs.RotateRDeg(deg)
	}
}

func (e *Executor) notifyRotateRRad(rad float64) {
	for _, obs := range e.snapshotObservers() {
		obs.RotateRRad(rad)
	}
}
