package vm

import "github.com/vqsxvm/vqsx/pkg/bytecode"

// recordingObserver records every notification it receives as a short
// tagged string, in delivery order, so tests can assert on the exact
// sequence §8 specifies.
type recordingObserver struct {
	StubObserver
	events []string
}

func (r *recordingObserver) OnStep(post bool) {
	if post {
		r.events = append(r.events, "onstep(true)")
	} else {
		r.events = append(r.events, "onstep(false)")
	}
}

func (r *recordingObserver) FetchInst(raw byte) {
	r.events = append(r.events, "fetchinst")
}

func (r *recordingObserver) FetchDecodedInst(op bytecode.Opcode) {
	r.events = append(r.events, "decoded("+op.String()+")")
}

func (r *recordingObserver) Halt(faulty bool) {
	if faulty {
		r.events = append(r.events, "halt(true)")
	} else {
		r.events = append(r.events, "halt(false)")
	}
}

func (r *recordingObserver) Reset() {
	r.events = append(r.events, "reset")
}

func (r *recordingObserver) Position(x, y int64) {
	r.events = append(r.events, "position")
}

func (r *recordingObserver) Forward(distance int64) {
	r.events = append(r.events, "forward")
}

func (r *recordingObserver) Color(index bytecode.Colors, rgb bytecode.RGBColor) {
	r.events = append(r.events, "color")
}

func (r *recordingObserver) StatePush() {
	r.events = append(r.events, "statepush")
}

func (r *recordingObserver) StatePop() {
	r.events = append(r.events, "statepop")
}

func (r *recordingObserver) PenStatePush() {
	r.events = append(r.events, "penstatepush")
}

func (r *recordingObserver) PenStatePop() {
	r.events = append(r.events, "penstatepop")
}

func (r *recordingObserver) Initialize() {
	r.events = append(r.events, "initialize")
}
