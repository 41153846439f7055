package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"suyan/internal/candidate"
	"suyan/internal/inputsession"
	"suyan/internal/ipc"
	"suyan/internal/keycodec"
)

func TestConvertModifiers(t *testing.T) {
	tests := []struct {
		name string
		in   ipc.ModifierFlags
		want keycodec.Modifiers
	}{
		{"none", 0, 0},
		{"shift", ipc.ModShift, keycodec.ModShift},
		{"control", ipc.ModControl, keycodec.ModControl},
		{"alt", ipc.ModAlt, keycodec.ModAlt},
		{"shift+control", ipc.ModShift | ipc.ModControl, keycodec.ModShift | keycodec.ModControl},
		{"all", ipc.ModShift | ipc.ModControl | ipc.ModAlt, keycodec.ModShift | keycodec.ModControl | keycodec.ModAlt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, convertModifiers(tt.in))
		})
	}
}

func TestEncodeKeyResult(t *testing.T) {
	out := encodeKeyResult(true, "")
	require.Equal(t, []byte{1}, out)

	out = encodeKeyResult(false, "")
	require.Equal(t, []byte{0}, out)

	out = encodeKeyResult(true, "a")
	require.Equal(t, byte(1), out[0])
	require.Equal(t, ipc.EncodeUTF16LE("a"), out[1:])
}

func TestDirectionFor(t *testing.T) {
	composing := inputsession.State{IsComposing: true}
	expanded := inputsession.State{IsComposing: true, IsExpanded: true}

	require.Equal(t, candidate.Horizontal, directionFor(composing, true))
	require.Equal(t, candidate.Vertical, directionFor(composing, false))
	require.Equal(t, candidate.ExpandedHorizontal, directionFor(expanded, true))
	require.Equal(t, candidate.ExpandedVertical, directionFor(expanded, false))
}
