package ipc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := Request{Cmd: CmdProcessKey, SessionID: 7, Param1: 0x41, Param2: uint32(ModShift)}

	require.NoError(t, WriteRequest(&buf, req, nil))
	require.Equal(t, requestHeaderSize, buf.Len())

	got, err := ReadRequestHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := EncodeUTF16LE("你好")

	require.NoError(t, WriteResponse(&buf, ResultOK, payload))

	resp, data, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, ResultOK, resp.ResultCode)
	require.Equal(t, uint32(len(payload)), resp.DataSize)
	require.Equal(t, payload, data)
}

func TestResponseEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, ResultInvalidSession, nil))

	resp, data, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, ResultInvalidSession, resp.ResultCode)
	require.Nil(t, data)
}

func TestResponseRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})             // result = OK
	buf.Write([]byte{0, 0, 0x20, 0})          // data_size = way over maxPayload
	_, _, err := ReadResponse(&buf)
	require.Error(t, err)
}

func TestPackUnpackCoordinates(t *testing.T) {
	px, py := int16(-120), int16(340)
	packed := PackCoordinates(px, py)
	gx, gy := UnpackCoordinates(packed)
	require.Equal(t, px, gx)
	require.Equal(t, py, gy)
}

func TestUTF16RoundTrip(t *testing.T) {
	cases := []string{"hello", "你好世界", "a\U0001F600b"}
	for _, s := range cases {
		encoded := EncodeUTF16LE(s)
		decoded, err := DecodeUTF16LE(encoded)
		require.NoError(t, err)
		require.Equal(t, s, decoded)
	}
}

func TestDecodeUTF16LEOddLength(t *testing.T) {
	_, err := DecodeUTF16LE([]byte{0x01})
	require.Error(t, err)
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "PROCESS_KEY", CmdProcessKey.String())
	require.Contains(t, Command(999).String(), "999")
}
