package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqsxvm/vqsx/pkg/bytecode"
	"github.com/vqsxvm/vqsx/pkg/container"
	"github.com/vqsxvm/vqsx/pkg/vm"
)

func TestScenarioFiveParsedImageFaultsUnderFaultPolicy(t *testing.T) {
	buf := []byte{'V', 'Q', 's', 'X', 'i'}
	buf = append(buf, le64(0x16)...)
	buf = append(buf, le64(0x16)...)
	buf = append(buf, 0x00)
	buf = append(buf, le64(0x02)...)
	buf = append(buf, 0x00, 0x00)

	img, err := container.Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x16), img.Width)
	assert.Equal(t, uint64(0x16), img.Height)
	assert.False(t, img.ColorDepth)
	assert.Equal(t, []byte{0x00, 0x00}, img.Bytecode)

	e := vm.New(vm.NullFault)
	e.Load(img.Bytecode)
	e.Run()
	assert.Equal(t, bytecode.HALTED|bytecode.FAULT, e.Status())
}

func TestScenarioSixUnderflowLeavesNothingToLoad(t *testing.T) {
	buf := []byte{'V', 'Q', 's', 'X', 'i'}
	buf = append(buf, le64(1)...)
	buf = append(buf, le64(1)...)
	buf = append(buf, 0x00)
	buf = append(buf, le64(8)...) // declares 8 bytes, supplies none

	_, err := container.Parse(buf)
	require.Error(t, err)
	var underflow *container.BytecodeUnderflowError
	require.ErrorAs(t, err, &underflow)
	assert.Equal(t, uint64(8), underflow.Expected)
	assert.Equal(t, uint64(0), underflow.Actual)
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
