package voice

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// 火山引擎 WebSocket 二进制帧：4 字节头 + 可选 sequence / event 元数据 + payload。
const frameVersion = 0b0001

type frameType uint8

const (
	frameFullClientRequest frameType = 0b0001
	frameFullServerResp    frameType = 0b1001
	frameAudioOnlyResp     frameType = 0b1011
	frameError             frameType = 0b1111
)

type frameFlags uint8

const (
	flagNoSequence       frameFlags = 0b0000
	flagPositiveSequence frameFlags = 0b0001
	flagLastNoSequence   frameFlags = 0b0010
	flagNegativeSequence frameFlags = 0b0011
	flagWithEvent        frameFlags = 0b0100
)

const (
	serializationNone uint8 = 0b0000
	serializationJSON uint8 = 0b0001

	compressionNone uint8 = 0b0000
	compressionGzip uint8 = 0b0001
)

type frameEvent int32

const (
	eventStartConnection    frameEvent = 1
	eventFinishConnection   frameEvent = 2
	eventConnectionStarted  frameEvent = 50
	eventConnectionFailed   frameEvent = 51
	eventConnectionFinished frameEvent = 52
	eventSessionFinished    frameEvent = 152
	eventSessionFailed      frameEvent = 153
)

type frame struct {
	Type          frameType
	Flags         frameFlags
	Serialization uint8
	Compression   uint8
	Sequence      int32
	Event         frameEvent
	SessionID     string
	ConnectID     string
	ErrorCode     uint32
	Payload       []byte
}

// last 判断是否为最后一包
func (f *frame) last() bool {
	switch f.Flags & 0b0011 {
	case flagLastNoSequence, flagNegativeSequence:
		return true
	default:
		return false
	}
}

func (f *frame) hasEvent() bool {
	return f.Flags&flagWithEvent == flagWithEvent
}

// payload 返回解压后的内容
func (f *frame) payload() ([]byte, error) {
	switch f.Compression {
	case compressionNone:
		return f.Payload, nil
	case compressionGzip:
		reader, err := gzip.NewReader(bytes.NewReader(f.Payload))
		if err != nil {
			return nil, fmt.Errorf("gzip reader creation failed: %w", err)
		}
		defer reader.Close()
		return io.ReadAll(reader)
	default:
		return nil, fmt.Errorf("unsupported compression method: %d", f.Compression)
	}
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("gzip write failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("gzip close failed: %w", err)
	}
	return buf.Bytes(), nil
}

func eventSkipsSessionID(event frameEvent) bool {
	switch event {
	case eventStartConnection, eventFinishConnection,
		eventConnectionStarted, eventConnectionFailed, eventConnectionFinished:
		return true
	default:
		return false
	}
}

func eventHasConnectID(event frameEvent) bool {
	switch event {
	case eventConnectionStarted, eventConnectionFailed, eventConnectionFinished:
		return true
	default:
		return false
	}
}

func writeSized(buf *bytes.Buffer, data []byte) {
	_ = binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
}

func readSized(r io.Reader, what string) ([]byte, error) {
	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, fmt.Errorf("failed to read %s size: %w", what, err)
	}
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read %s (expected %d bytes): %w", what, size, err)
	}
	return data, nil
}

// encodeFrame 编码完整消息
func encodeFrame(f *frame) []byte {
	var buf bytes.Buffer
	buf.WriteByte(frameVersion<<4 | 0b0001)
	buf.WriteByte(uint8(f.Type)<<4 | uint8(f.Flags))
	buf.WriteByte(f.Serialization<<4 | f.Compression)
	buf.WriteByte(0)

	switch f.Flags & 0b0011 {
	case flagPositiveSequence, flagNegativeSequence:
		_ = binary.Write(&buf, binary.BigEndian, f.Sequence)
	}

	if f.hasEvent() {
		_ = binary.Write(&buf, binary.BigEndian, int32(f.Event))
		if !eventSkipsSessionID(f.Event) {
			writeSized(&buf, []byte(f.SessionID))
		}
		if eventHasConnectID(f.Event) {
			writeSized(&buf, []byte(f.ConnectID))
		}
	}

	if f.Type == frameError {
		_ = binary.Write(&buf, binary.BigEndian, f.ErrorCode)
	}
	writeSized(&buf, f.Payload)
	return buf.Bytes()
}

// decodeFrame 解码完整消息
func decodeFrame(data []byte) (*frame, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("header data too short: got %d, need 4", len(data))
	}
	if version := data[0] >> 4; version != frameVersion {
		return nil, fmt.Errorf("unsupported protocol version: %d", version)
	}

	headerSize := int(data[0]&0x0F) * 4
	if headerSize < 4 || len(data) < headerSize {
		return nil, fmt.Errorf("invalid header size: %d", headerSize)
	}

	f := &frame{
		Type:          frameType(data[1] >> 4),
		Flags:         frameFlags(data[1] & 0x0F),
		Serialization: data[2] >> 4,
		Compression:   data[2] & 0x0F,
	}
	r := bytes.NewReader(data[headerSize:])

	switch f.Flags & 0b0011 {
	case flagPositiveSequence, flagNegativeSequence:
		if err := binary.Read(r, binary.BigEndian, &f.Sequence); err != nil {
			return nil, fmt.Errorf("failed to read sequence: %w", err)
		}
	}

	if f.hasEvent() {
		var event int32
		if err := binary.Read(r, binary.BigEndian, &event); err != nil {
			return nil, fmt.Errorf("failed to read event type: %w", err)
		}
		f.Event = frameEvent(event)

		if !eventSkipsSessionID(f.Event) {
			session, err := readSized(r, "session id")
			if err != nil {
				return nil, err
			}
			f.SessionID = string(session)
		}
		if eventHasConnectID(f.Event) {
			connect, err := readSized(r, "connect id")
			if err != nil {
				return nil, err
			}
			f.ConnectID = string(connect)
		}
	}

	if f.Type == frameError {
		if err := binary.Read(r, binary.BigEndian, &f.ErrorCode); err != nil {
			return nil, fmt.Errorf("failed to read error code: %w", err)
		}
	}

	payload, err := readSized(r, "payload")
	if err != nil {
		return nil, err
	}
	f.Payload = payload
	return f, nil
}
