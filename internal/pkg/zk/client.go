// Package zk speaks the session protocol of ZKTeco-style biometric attendance
// terminals over UDP. Only the subset the sync job needs is implemented:
// connect, read the attendance log, disconnect.
package zk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Event is one raw punch captured by the terminal.
type Event struct {
	DeviceUserID string
	RecordTime   time.Time
}

// Client holds a device session. Sessions are expensive to establish and some
// firmware misbehaves when torn down after every call, so the connection is
// kept open across polls and only dropped on a transport error.
type Client struct {
	host           string
	port           int
	connectTimeout time.Duration
	readTimeout    time.Duration
	loc            *time.Location

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	sessionID uint16
	replyID   uint16
}

// NewClient builds a client for the terminal at host:port. Record timestamps
// are interpreted in loc, the device's wall clock.
func NewClient(host string, port int, connectTimeout, readTimeout time.Duration, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		host:           host,
		port:           port,
		connectTimeout: connectTimeout,
		readTimeout:    readTimeout,
		loc:            loc,
	}
}

// Connect establishes a device session. Calling it while connected is a no-op
// so the poller can call it unconditionally.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	if c.connected {
		return nil
	}

	addr := net.JoinHostPort(c.host, fmt.Sprintf("%d", c.port))
	conn, err := net.DialTimeout("udp", addr, c.connectTimeout)
	if err != nil {
		return fmt.Errorf("zk: dial %s: %w", addr, err)
	}
	c.conn = conn
	c.replyID = 0

	reply, _, err := c.roundTrip(cmdConnect, nil)
	if err != nil {
		c.dropLocked()
		return fmt.Errorf("zk: connect handshake: %w", err)
	}
	if reply.Command != cmdAckOK {
		c.dropLocked()
		return fmt.Errorf("zk: connect rejected with command %d", reply.Command)
	}

	// The session id assigned in the handshake tags every later packet.
	c.sessionID = reply.Session
	c.connected = true
	return nil
}

// ReadAttendanceLogs pulls the full attendance log from the terminal. A
// receive timeout after at least one data packet is how this firmware signals
// end of transmission, so that case returns the collected events, not an
// error.
func (c *Client) ReadAttendanceLogs() ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	data, err := c.readBulk(cmdAttLogRead)
	if err != nil {
		// Transport failure invalidates the session; reconnect next poll.
		c.dropLocked()
		return nil, err
	}

	return c.parseLogs(data)
}

// readBulk issues command and collects the device's response payload. Small
// responses arrive inline behind CMD_ACK_OK; large ones are announced with
// CMD_PREPARE_DATA followed by CMD_DATA bursts.
func (c *Client) readBulk(command uint16) ([]byte, error) {
	reply, payload, err := c.roundTrip(command, nil)
	if err != nil {
		return nil, err
	}

	switch reply.Command {
	case cmdAckOK, cmdAckData:
		return payload, nil
	case cmdPrepareData:
		// fall through to the burst loop below
	default:
		return nil, fmt.Errorf("zk: unexpected reply command %d", reply.Command)
	}

	var total uint32
	if len(payload) >= 4 {
		total = binary.LittleEndian.Uint32(payload[:4])
	}

	var data []byte
	for uint32(len(data)) < total {
		hdr, chunk, err := c.receive()
		if err != nil {
			if isTimeout(err) && len(data) > 0 {
				// Benign end-of-burst timeout: the device has sent
				// what it has and gone quiet.
				break
			}
			return nil, err
		}

		switch hdr.Command {
		case cmdData:
			data = append(data, chunk...)
		case cmdAckOK:
			// Terminator some firmware sends once the burst is done.
			c.sendFreeData()
			return data, nil
		default:
			return nil, fmt.Errorf("zk: unexpected burst command %d", hdr.Command)
		}
	}

	c.sendFreeData()
	return data, nil
}

func (c *Client) parseLogs(data []byte) ([]Event, error) {
	// Some firmware prefixes the log with a 4-byte total size; skip it when
	// the remainder only divides into records without it.
	if len(data)%recordLen != 0 && len(data) >= 4 && (len(data)-4)%recordLen == 0 {
		data = data[4:]
	}

	events := make([]Event, 0, len(data)/recordLen)
	for off := 0; off+recordLen <= len(data); off += recordLen {
		ev, err := decodeRecord(data[off:off+recordLen], c.loc)
		if err != nil {
			return events, err
		}
		if ev.DeviceUserID == "" {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// Disconnect ends the session explicitly. It is not called between polls;
// only on shutdown.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	_, _, _ = c.roundTrip(cmdExit, nil)
	c.dropLocked()
	return nil
}

// sendFreeData releases the device-side read buffer. Best effort.
func (c *Client) sendFreeData() {
	_, _, _ = c.roundTrip(cmdFreeData, nil)
}

func (c *Client) roundTrip(command uint16, data []byte) (header, []byte, error) {
	if err := c.send(command, data); err != nil {
		return header{}, nil, err
	}
	return c.receive()
}

func (c *Client) send(command uint16, data []byte) error {
	c.replyID++
	pkt := encodePacket(command, c.sessionID, c.replyID, data)

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(pkt); err != nil {
		return fmt.Errorf("zk: write: %w", err)
	}
	return nil
}

func (c *Client) receive() (header, []byte, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return header{}, nil, err
	}

	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil {
		return header{}, nil, err
	}

	hdr, err := decodeHeader(buf[:n])
	if err != nil {
		return header{}, nil, err
	}
	return hdr, buf[headerLen:n], nil
}

// dropLocked closes the socket and forgets the session.
func (c *Client) dropLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.connected = false
	c.sessionID = 0
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
