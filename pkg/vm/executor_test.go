package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqsxvm/vqsx/pkg/bytecode"
	"github.com/vqsxvm/vqsx/pkg/builder"
)

func TestScenarioOneExplicitNoopsThenHalt(t *testing.T) {
	for _, policy := range []NullPolicy{NullNoop, NullHalt, NullFault} {
		e := New(policy)
		rec := &recordingObserver{}
		e.Register(rec)
		e.Load([]byte{0x21, 0x21, 0x1F})
		e.Run()

		want := []string{
			"onstep(false)", "fetchinst", "decoded(NOOP)", "onstep(true)",
			"onstep(false)", "fetchinst", "decoded(NOOP)", "onstep(true)",
			"onstep(false)", "fetchinst", "decoded(HALT)", "halt(false)",
		}
		assert.Equal(t, want, rec.events)
		assert.Equal(t, bytecode.HALTED, e.Status())
	}
}

func TestScenarioTwoColorAzureThenCleanHalt(t *testing.T) {
	e := New(NullNoop)

	var seenIndex bytecode.Colors
	var seenRGB bytecode.RGBColor
	rec := &recordingObserver{}
	e.Register(rec)
	e.Register(&colorCaptureObserver{onColor: func(index bytecode.Colors, rgb bytecode.RGBColor) {
		seenIndex = index
		seenRGB = rgb
	}})

	e.Load([]byte{byte(bytecode.COLOR), 0x0C})
	e.Run()

	assert.Equal(t, bytecode.AZURE, seenIndex)
	assert.Equal(t, bytecode.RGBColor{Red: 0xF0, Green: 0xFF, Blue: 0xFF}, seenRGB)
	assert.Equal(t, bytecode.HALTED, e.Status())
	assert.False(t, e.Status().Has(bytecode.FAULT))
}

type colorCaptureObserver struct {
	StubObserver
	onColor func(index bytecode.Colors, rgb bytecode.RGBColor)
}

func (c *colorCaptureObserver) Color(index bytecode.Colors, rgb bytecode.RGBColor) {
	c.onColor(index, rgb)
}

func TestScenarioThreeForwardFive(t *testing.T) {
	e := New(NullNoop)
	var seen int64
	e.Register(&forwardCaptureObserver{onForward: func(d int64) { seen = d }})

	b := builder.New()
	b.Forward(5)
	e.Load(b.Dump())
	e.Run()

	assert.Equal(t, int64(5), seen)
	assert.Equal(t, bytecode.HALTED, e.Status())
}

type forwardCaptureObserver struct {
	StubObserver
	onForward func(int64)
}

func (f *forwardCaptureObserver) Forward(d int64) { f.onForward(d) }

func TestScenarioFourPosition(t *testing.T) {
	e := New(NullNoop)
	var x, y int64
	e.Register(&positionCaptureObserver{onPosition: func(px, py int64) { x, y = px, py }})

	b := builder.New()
	b.Position(0xFFFE, 0xFEFF)
	e.Load(b.Dump())
	e.Run()

	assert.Equal(t, int64(0xFFFE), x)
	assert.Equal(t, int64(0xFEFF), y)
	assert.Equal(t, bytecode.HALTED, e.Status())
}

type positionCaptureObserver struct {
	StubObserver
	onPosition func(x, y int64)
}

func (p *positionCaptureObserver) Position(x, y int64) { p.onPosition(x, y) }

func TestStateStackOpcodesForwardDedicatedEvents(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)

	b := builder.New()
	b.StatePush().StatePop().PenStatePush().PenStatePop().Initialize()
	e.Load(b.Dump())
	e.Run()

	want := []string{
		"onstep(false)", "fetchinst", "decoded(STPUSH)", "statepush", "onstep(true)",
		"onstep(false)", "fetchinst", "decoded(STPOP)", "statepop", "onstep(true)",
		"onstep(false)", "fetchinst", "decoded(PSPUSH)", "penstatepush", "onstep(true)",
		"onstep(false)", "fetchinst", "decoded(PSPOP)", "penstatepop", "onstep(true)",
		"onstep(false)", "fetchinst", "decoded(INITIALIZE)", "initialize", "halt(false)",
	}
	assert.Equal(t, want, rec.events)
}

func TestBoundaryEmptyBytecodeHaltsCleanlyNoInstructionEvent(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)
	e.Load(nil)
	e.Run()

	for _, ev := range rec.events {
		assert.NotContains(t, ev, "decoded(")
	}
	assert.Equal(t, bytecode.HALTED, e.Status())
	assert.False(t, e.Status().Has(bytecode.FAULT))
}

func TestBoundaryOneByteHaltOpcode(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)
	e.Load([]byte{0x1F})
	e.Run()

	want := []string{"onstep(false)", "fetchinst", "decoded(HALT)", "halt(false)"}
	assert.Equal(t, want, rec.events)
}

func TestBoundaryOperandUnderflowFaults(t *testing.T) {
	e := New(NullNoop)
	e.Load([]byte{0x05}) // BRIGHTNESS with no operand byte
	e.Run()

	assert.Equal(t, bytecode.HALTED|bytecode.FAULT, e.Status())
}

func TestBoundaryUnknownOpcodeFaultsWithNoDecodedEvent(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)
	e.Load([]byte{0x22})
	e.Run()

	want := []string{"onstep(false)", "fetchinst", "halt(true)"}
	assert.Equal(t, want, rec.events)
	assert.Equal(t, bytecode.HALTED|bytecode.FAULT, e.Status())
}

func TestNullPolicyMatrix(t *testing.T) {
	// NullNoop: treated as nothing, execution continues to end of stream.
	e := New(NullNoop)
	e.Load([]byte{0x00})
	e.Run()
	assert.Equal(t, bytecode.HALTED, e.Status())
	assert.False(t, e.Status().Has(bytecode.FAULT))

	// NullHalt: clean halt.
	e = New(NullHalt)
	e.Load([]byte{0x00})
	e.Run()
	assert.Equal(t, bytecode.HALTED, e.Status())
	assert.False(t, e.Status().Has(bytecode.FAULT))

	// NullFault: faulting halt.
	e = New(NullFault)
	e.Load([]byte{0x00})
	e.Run()
	assert.Equal(t, bytecode.HALTED|bytecode.FAULT, e.Status())
}

func TestReservedOpcodesFaultingHalt(t *testing.T) {
	reserved := []bytecode.Opcode{
		bytecode.JUMP, bytecode.CALL, bytecode.JUMPIPC, bytecode.CALLIPC,
		bytecode.JUMPMST, bytecode.CALLMST, bytecode.RETURN, bytecode.WAITNEXT,
	}
	for _, op := range reserved {
		e := New(NullNoop)
		e.Load([]byte{byte(op)})
		e.Run()
		assert.Equalf(t, bytecode.HALTED|bytecode.FAULT, e.Status(), "opcode %v", op)
	}
}

func TestLoadThenResetRestoresIPCAndMSTAndClearsFault(t *testing.T) {
	e := New(NullNoop)
	e.Load([]byte{0x22}) // unknown opcode -> faulting halt
	e.Run()
	require.True(t, e.Status().Has(bytecode.FAULT))

	e.Reset()
	assert.Equal(t, 0, e.IPC())
	assert.Equal(t, 0, e.MST())
	assert.False(t, e.Status().Has(bytecode.FAULT))
}

func TestResetNotifiesObservers(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)
	e.Reset()
	assert.Contains(t, rec.events, "reset")
}

func TestDeregisterReturnsWhetherPresent(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	assert.False(t, e.Deregister(rec))
	e.Register(rec)
	assert.True(t, e.Deregister(rec))
	assert.False(t, e.Deregister(rec))
}

func TestRegisterIsIdempotent(t *testing.T) {
	e := New(NullNoop)
	rec := &recordingObserver{}
	e.Register(rec)
	e.Register(rec)
	e.Load([]byte{0x1F})
	e.Run()
	// one halt notification, not two, despite double-registering
	count := 0
	for _, ev := range rec.events {
		if ev == "halt(false)" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStatusAlwaysDefinedBitsAndFaultImpliesHalted(t *testing.T) {
	for _, buf := range [][]byte{{0x22}, {0x1F}, {0x21}, nil} {
		e := New(NullFault)
		e.Load(buf)
		e.Run()
		assert.True(t, e.Status().Valid())
		if e.Status().Has(bytecode.FAULT) {
			assert.True(t, e.Status().Has(bytecode.HALTED))
		}
	}
}
