package zk

import (
	"encoding/binary"
	"fmt"
	"time"
)

// ZKTeco UDP command words.
const (
	cmdConnect     = 1000
	cmdExit        = 1001
	cmdAckOK       = 2000
	cmdAckError    = 2001
	cmdAckData     = 2002
	cmdAckUnauth   = 1005
	cmdPrepareData = 1500
	cmdData        = 1501
	cmdFreeData    = 1502
	cmdAttLogRead  = 13
)

const (
	headerLen = 8
	// Attendance log record size used by this firmware family.
	recordLen = 40

	ushrtMax = 65535
)

// header lays out the 8-byte packet prefix: command, checksum, session id and
// reply counter, all little-endian uint16.
type header struct {
	Command uint16
	Chksum  uint16
	Session uint16
	Reply   uint16
}

func encodePacket(command, session, reply uint16, data []byte) []byte {
	buf := make([]byte, headerLen+len(data))
	binary.LittleEndian.PutUint16(buf[0:2], command)
	binary.LittleEndian.PutUint16(buf[2:4], 0) // checksum filled below
	binary.LittleEndian.PutUint16(buf[4:6], session)
	binary.LittleEndian.PutUint16(buf[6:8], reply)
	copy(buf[headerLen:], data)

	binary.LittleEndian.PutUint16(buf[2:4], checksum(buf))
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerLen {
		return header{}, fmt.Errorf("zk: short packet (%d bytes)", len(buf))
	}
	return header{
		Command: binary.LittleEndian.Uint16(buf[0:2]),
		Chksum:  binary.LittleEndian.Uint16(buf[2:4]),
		Session: binary.LittleEndian.Uint16(buf[4:6]),
		Reply:   binary.LittleEndian.Uint16(buf[6:8]),
	}, nil
}

// checksum folds the packet into 16-bit one's-complement form, checksum field
// zeroed. Matches the terminal's own computation.
func checksum(buf []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(buf); i += 2 {
		if i == 2 {
			continue // checksum field itself
		}
		sum += uint32(binary.LittleEndian.Uint16(buf[i : i+2]))
		if sum > ushrtMax {
			sum -= ushrtMax
		}
	}
	if len(buf)%2 == 1 {
		sum += uint32(buf[len(buf)-1])
		if sum > ushrtMax {
			sum -= ushrtMax
		}
	}
	return uint16(ushrtMax - sum - 1)
}

// decodeRecordTime unpacks the terminal's packed timestamp: a base-2000
// mixed-radix encoding of (year, month, day, hour, minute, second).
func decodeRecordTime(packed uint32, loc *time.Location) time.Time {
	t := int(packed)

	second := t % 60
	t /= 60
	minute := t % 60
	t /= 60
	hour := t % 24
	t /= 24
	day := t%31 + 1
	t /= 31
	month := t%12 + 1
	t /= 12
	year := t + 2000

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
}

// decodeRecord parses one 40-byte attendance log entry. The device user id is
// an ASCII, NUL-padded string; the punch timestamp sits at offset 27.
func decodeRecord(buf []byte, loc *time.Location) (Event, error) {
	if len(buf) < recordLen {
		return Event{}, fmt.Errorf("zk: short record (%d bytes)", len(buf))
	}

	id := buf[2 : 2+9]
	for i, b := range id {
		if b == 0 {
			id = id[:i]
			break
		}
	}

	return Event{
		DeviceUserID: string(id),
		RecordTime:   decodeRecordTime(binary.LittleEndian.Uint32(buf[27:31]), loc),
	}, nil
}
