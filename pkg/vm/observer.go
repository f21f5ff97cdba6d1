package vm

import "github.com/vqsxvm/vqsx/pkg/bytecode"

// Observer is the VQsX executor's capability set: one method per VM event.
// A host registers an Observer to watch a running VM; the executor holds a
// non-owning reference and never outlives it (the host owns the lifetime).
//
// Implementations may be complete (every method meaningfully implemented)
// or built on StubObserver, embedding it and overriding only the events
// they care about, the classic Go "default no-op adapter" shape.
//
// Observers must not mutate the executor from within a notification except
// to deregister themselves, which is explicitly permitted. Delivery order
// across multiple registered observers is unspecified; each individual
// observer always sees its own events in program order.
//
// Rendering a VQsX program to a screen (the original source's Tkinter
// turtle-canvas observer) is a host concern: an Observer implementation
// that draws is exactly where that would live, but no such implementation
// ships in this module.
type Observer interface {
	// OnStep fires twice per step(): once before fetch (post=false), once
	// after the instruction executes (post=true). Omitted on a step that
	// halts: Halt is the terminal event for that step instead.
	OnStep(post bool)

	// FetchInst fires once per step with the raw undecoded opcode byte.
	FetchInst(raw byte)

	// FetchDecodedInst fires once per step with the decoded opcode, only
	// when the raw byte decoded to a defined opcode.
	FetchDecodedInst(op bytecode.Opcode)

	// Halt fires exactly once per halt, clean or faulting.
	Halt(faulty bool)

	// Reset fires whenever the executor's Reset method runs.
	Reset()

	Position(x, y int64)
	Center()
	Origin()
	StatePush()
	StatePop()
	PenStatePush()
	PenStatePop()
	Initialize()
	SetOrigin(origin bytecode.SetOriginValues)
	Brightness(level int)
	Scale(factor int)
	Color(index bytecode.Colors, rgb bytecode.RGBColor)
	Draw(dx, dy int64)
	Forward(distance int64)
	Backward(distance int64)
	DrawForward(distance int64)
	DrawBackward(distance int64)
	RotateDeg(degrees float64)
	RotateRad(radians float64)
	RotateRDeg(degrees float64)
	RotateRRad(radians float64)
	RotateOrigin()
	RotateSetOrigin(origin bytecode.SetOriginValues)
}

// StubObserver is a concrete no-op Observer. Embed it in a custom observer
// type and override only the methods you need; the rest fall through to
// these stubs, mirroring the original abstract observer's stub subclass.
type StubObserver struct{}

var _ Observer = StubObserver{}

func (StubObserver) OnStep(post bool)                                   {}
func (StubObserver) FetchInst(raw byte)                                 {}
func (StubObserver) FetchDecodedInst(op bytecode.Opcode)                {}
func (StubObserver) Halt(faulty bool)                                   {}
func (StubObserver) Reset()                                             {}
func (StubObserver) Position(x, y int64)                                {}
func (StubObserver) Center()                                            {}
func (StubObserver) Origin()                                            {}
func (StubObserver) StatePush()                                         {}
func (StubObserver) StatePop()                                          {}
func (StubObserver) PenStatePush()                                      {}
func (StubObserver) PenStatePop()                                       {}
func (StubObserver) Initialize()                                        {}
func (StubObserver) SetOrigin(origin bytecode.SetOriginValues)          {}
func (StubObserver) Brightness(level int)                               {}
func (StubObserver) Scale(factor int)                                   {}
func (StubObserver) Color(index bytecode.Colors, rgb bytecode.RGBColor) {}
func (StubObserver) Draw(dx, dy int64)                                  {}
func (StubObserver) Forward(distance int64)                             {}
func (StubObserver) Backward(distance int64)                            {}
func (StubObserver) DrawForward(distance int64)                         {}
func (StubObserver) DrawBackward(distance int64)                        {}
func (StubObserver) RotateDeg(degrees float64)                          {}
func (StubObserver) RotateRad(radians float64)                          {}
func (StubObserver) RotateRDeg(degrees float64)                         {}
func (StubObserver) RotateRRad(radians float64)                         {}
func (StubObserver) RotateOrigin()                                      {}
func (StubObserver) RotateSetOrigin(origin bytecode.SetOriginValues)    {}
