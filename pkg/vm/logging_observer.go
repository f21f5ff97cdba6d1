package vm

import (
	"github.com/rs/zerolog"

	"github.com/vqsxvm/vqsx/pkg/bytecode"
)

// LoggingObserver is a diagnostic Observer that logs every VM event at
// debug level through a zerolog.Logger. It is purely additive: nothing on
// the executor's core path depends on it, and a host with no interest in
// tracing never has to construct one.
type LoggingObserver struct {
	StubObserver
	log zerolog.Logger
}

// NewLoggingObserver wraps log for use as a VM Observer.
func NewLoggingObserver(log zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{log: log.With().Str("component", "vqsx-vm").Logger()}
}

func (o *LoggingObserver) OnStep(post bool) {
	o.log.Debug().Bool("post", post).Msg("onstep")
}

func (o *LoggingObserver) FetchInst(raw byte) {
	o.log.Debug().Uint8("raw", raw).Msg("fetchinst")
}

func (o *LoggingObserver) FetchDecodedInst(op bytecode.Opcode) {
	o.log.Debug().Stringer("opcode", op).Msg("fetchdecodedinst")
}

func (o *LoggingObserver) Halt(faulty bool) {
	o.log.Debug().Bool("faulty", faulty).Msg("halt")
}

func (o *LoggingObserver) Reset() {
	o.log.Debug().Msg("reset")
}

func (o *LoggingObserver) Position(x, y int64) {
	o.log.Debug().Int64("x", x).Int64("y", y).Msg("position")
}

func (o *LoggingObserver) Center() {
	o.log.Debug().Msg("center")
}

func (o *LoggingObserver) Origin() {
	o.log.Debug().Msg("origin")
}

func (o *LoggingObserver) StatePush() {
	o.log.Debug().Msg("statepush")
}

func (o *LoggingObserver) StatePop() {
	o.log.Debug().Msg("statepop")
}

func (o *LoggingObserver) PenStatePush() {
	o.log.Debug().Msg("penstatepush")
}

func (o *LoggingObserver) PenStatePop() {
	o.log.Debug().Msg("penstatepop")
}

func (o *LoggingObserver) Initialize() {
	o.log.Debug().Msg("initialize")
}

func (o *LoggingObserver) SetOrigin(origin bytecode.SetOriginValues) {
	o.log.Debug().Uint8("origin", byte(origin)).Msg("setorigin")
}

func (o *LoggingObserver) Brightness(level int) {
	o.log.Debug().Int("level", level).Msg("brightness")
}

func (o *LoggingObserver) Scale(factor int) {
	o.log.Debug().Int("factor", factor).Msg("scale")
}

func (o *LoggingObserver) Color(index bytecode.Colors, rgb bytecode.RGBColor) {
	o.log.Debug().
		Uint8("index", byte(index)).
		Uint8("r", rgb.Red).Uint8("g", rgb.Green).Uint8("b", rgb.Blue).
		Msg("color")
}

func (o *LoggingObserver) Draw(dx, dy int64) {
	o.log.Debug().Int64("dx", dx).Int64("dy", dy).Msg("draw")
}

func (o *LoggingObserver) Forward(distance int64) {
	o.log.Debug().Int64("distance", distance).Msg("forward")
}

func (o *LoggingObserver) Backward(distance int64) {
	o.log.Debug().Int64("distance", distance).Msg("backward")
}

func (o *LoggingObserver) DrawForward(distance int64) {
	o.log.Debug().Int64("distance", distance).Msg("drawforward")
}

func (o *LoggingObserver) DrawBackward(distance int64) {
	o.log.Debug().Int64("distance", distance).Msg("drawbackward")
}

func (o *LoggingObserver) RotateDeg(degrees float64) {
	o.log.Debug().Float64("degrees", degrees).Msg("rotatedeg")
}

func (o *LoggingObserver) RotateRad(radians float64) {
	o.log.Debug().Float64("radians", radians).Msg("rotaterad")
}

func (o *LoggingObserver) RotateRDeg(degrees float64) {
	o.log.Debug().Float64("degrees", degrees).Msg("rotaterdeg")
}

func (o *LoggingObserver) RotateRRad(radians float64) {
	o.log.Debug().Float64("radians", radians).Msg("rotaterrad")
}

func (o *LoggingObserver) RotateOrigin() {
	o.log.Debug().Msg("rotateorigin")
}

func (o *LoggingObserver) RotateSetOrigin(origin bytecode.SetOriginValues) {
	o.log.Debug().Uint8("origin", byte(origin)).Msg("rotatesetorigin")
}
