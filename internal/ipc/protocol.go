// Package ipc provides the named-pipe transport between the suyan-tsf
// client shim (one instance per host process) and the suyand server
// (one instance per logged-in user).
//
// The wire format is a fixed 16-byte request header with no payload,
// and an 8-byte response header followed by its payload. All integers are little-endian, matching the
// Windows platform the client shim runs on.
package ipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PipeName is the well-known named pipe every suyand server listens
// on and every suyan-tsf client connects to.
const PipeName = `\\.\pipe\SuYanInputMethod`

// Command identifies the operation a request header carries.
type Command uint32

const (
	CmdEcho            Command = 1
	CmdStartSession    Command = 2
	CmdEndSession      Command = 3
	CmdProcessKey      Command = 4
	CmdTestKey         Command = 5
	CmdFocusIn         Command = 6
	CmdFocusOut        Command = 7
	CmdUpdatePosition  Command = 8
	CmdCommit          Command = 9
	CmdClear           Command = 10
	CmdSelectCandidate Command = 11
	CmdShutdown        Command = 12
)

func (c Command) String() string {
	switch c {
	case CmdEcho:
		return "ECHO"
	case CmdStartSession:
		return "START_SESSION"
	case CmdEndSession:
		return "END_SESSION"
	case CmdProcessKey:
		return "PROCESS_KEY"
	case CmdTestKey:
		return "TEST_KEY"
	case CmdFocusIn:
		return "FOCUS_IN"
	case CmdFocusOut:
		return "FOCUS_OUT"
	case CmdUpdatePosition:
		return "UPDATE_POSITION"
	case CmdCommit:
		return "COMMIT"
	case CmdClear:
		return "CLEAR"
	case CmdSelectCandidate:
		return "SELECT_CANDIDATE"
	case CmdShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("Command(%d)", uint32(c))
	}
}

// ModifierFlags mirrors SUYAN_MOD_* from the wire protocol: a bitmask
// packed into a request's param1/param2 fields where a command needs
// to carry held modifier keys.
type ModifierFlags uint32

const (
	ModNone    ModifierFlags = 0
	ModShift   ModifierFlags = 0x01
	ModControl ModifierFlags = 0x02
	ModAlt     ModifierFlags = 0x04
)

// Result codes carried in a Response header.
type Result uint32

const (
	ResultOK              Result = 0
	ResultUnknownCommand  Result = 1
	ResultInvalidSession  Result = 2
	ResultEngineError     Result = 3
	ResultMalformedPacket Result = 4
)

// requestHeaderSize is the fixed size of Request on the wire: four
// uint32 fields, 16 bytes total.
const requestHeaderSize = 16

// responseHeaderSize is the fixed size of a Response header: two
// uint32 fields, 8 bytes total.
const responseHeaderSize = 8

// Request is the fixed 16-byte header every client message carries:
// {cmd, session_id, param1, param2}, all little-endian uint32. Unlike
// the response side, a request never carries a trailing payload —
// everything a command needs (a packed coordinate, a keycode, a
// candidate index) fits in param1/param2.
type Request struct {
	Cmd       Command
	SessionID uint32
	Param1    uint32
	Param2    uint32
}

// WriteRequest writes the 16-byte header to w. payload is accepted for
// symmetry with WriteResponse but is always empty for this protocol.
func WriteRequest(w io.Writer, req Request, payload []byte) error {
	var buf [requestHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(req.Cmd))
	binary.LittleEndian.PutUint32(buf[4:8], req.SessionID)
	binary.LittleEndian.PutUint32(buf[8:12], req.Param1)
	binary.LittleEndian.PutUint32(buf[12:16], req.Param2)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write request header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write request payload: %w", err)
		}
	}
	return nil
}

// ReadRequestHeader reads and decodes the fixed 16-byte request header
// from r. Requests carry no payload, so nothing follows the header.
func ReadRequestHeader(r io.Reader) (Request, error) {
	var buf [requestHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Request{}, fmt.Errorf("read request header: %w", err)
	}
	return Request{
		Cmd:       Command(binary.LittleEndian.Uint32(buf[0:4])),
		SessionID: binary.LittleEndian.Uint32(buf[4:8]),
		Param1:    binary.LittleEndian.Uint32(buf[8:12]),
		Param2:    binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// Response is the fixed 8-byte header every server reply starts with:
// {result, data_size}, both little-endian uint32.
type Response struct {
	ResultCode Result
	DataSize   uint32
}

// WriteResponse writes the 8-byte header followed by data to w.
func WriteResponse(w io.Writer, result Result, data []byte) error {
	var buf [responseHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(result))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(data)))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write response header: %w", err)
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write response payload: %w", err)
		}
	}
	return nil
}

// maxPayload guards against a misbehaving peer claiming an enormous
// data_size; real payloads are a 4-byte session handle or a flag byte
// and committed text, never more than a few KB.
const maxPayload = 1 << 20 // 1 MiB

// ReadResponse reads the 8-byte header and its payload from r.
func ReadResponse(r io.Reader) (Response, []byte, error) {
	var buf [responseHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Response{}, nil, fmt.Errorf("read response header: %w", err)
	}
	resp := Response{
		ResultCode: Result(binary.LittleEndian.Uint32(buf[0:4])),
		DataSize:   binary.LittleEndian.Uint32(buf[4:8]),
	}
	if resp.DataSize > maxPayload {
		return Response{}, nil, fmt.Errorf("response payload too large: %d bytes", resp.DataSize)
	}
	if resp.DataSize == 0 {
		return resp, nil, nil
	}
	data := make([]byte, resp.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return Response{}, nil, fmt.Errorf("read response payload: %w", err)
	}
	return resp, data, nil
}

// PackCoordinates packs a signed x/y pair into a single uint32 param,
// mirroring the original packCoordinates helper: x in the high 16
// bits, y in the low 16 bits.
func PackCoordinates(x, y int16) uint32 {
	return uint32(uint16(x))<<16 | uint32(uint16(y))
}

// UnpackCoordinates reverses PackCoordinates.
func UnpackCoordinates(packed uint32) (x, y int16) {
	x = int16(uint16(packed >> 16))
	y = int16(uint16(packed & 0xffff))
	return x, y
}

// EncodeUTF16LE encodes s as UTF-16LE bytes for a request/response payload.
func EncodeUTF16LE(s string) []byte {
	runes := []rune(s)
	buf := make([]byte, 0, len(runes)*2)
	for _, r := range runes {
		if r > 0xffff {
			r -= 0x10000
			hi := uint16(0xd800 + (r >> 10))
			lo := uint16(0xdc00 + (r & 0x3ff))
			buf = binary.LittleEndian.AppendUint16(buf, hi)
			buf = binary.LittleEndian.AppendUint16(buf, lo)
			continue
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(r))
	}
	return buf
}

// DecodeUTF16LE decodes a UTF-16LE payload back into a Go string.
func DecodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("decode utf16le: odd byte length %d", len(b))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return decodeUTF16(units), nil
}

func decodeUTF16(units []uint16) string {
	var out []rune
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xd800 && u <= 0xdbff && i+1 < len(units) && units[i+1] >= 0xdc00 && units[i+1] <= 0xdfff:
			r := (rune(u-0xd800) << 10) + rune(units[i+1]-0xdc00) + 0x10000
			out = append(out, r)
			i++
		default:
			out = append(out, rune(u))
		}
	}
	return string(out)
}
