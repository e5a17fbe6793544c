package mesh

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-navmesh/pkg/pools"
)

// Snapshot layout: [Header:16][Payload:N], payload = snappy(gob(Mesh)).
const (
	SnapshotMagic   uint32 = 0x4E41564D // "NAVM"
	SnapshotVersion uint16 = 1
)

// SnapshotHeader precedes the compressed payload.
type SnapshotHeader struct {
	Magic     uint32
	Version   uint16
	Reserved  uint16
	Checksum  uint32 // crc32 (IEEE) of the compressed payload
	PayloadSz uint32
}

var headerSize = binary.Size(SnapshotHeader{})

// WriteSnapshot encodes m to w.
func WriteSnapshot(w io.Writer, m *Mesh) error {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(m); err != nil {
		return fmt.Errorf("failed to encode mesh: %w", err)
	}

	payload := snappy.Encode(nil, raw.Bytes())
	header := SnapshotHeader{
		Magic:     SnapshotMagic,
		Version:   SnapshotVersion,
		Checksum:  crc32.ChecksumIEEE(payload),
		PayloadSz: uint32(len(payload)),
	}

	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write snapshot payload: %w", err)
	}
	return nil
}

// SaveSnapshot writes m to a new file at path.
func SaveSnapshot(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := WriteSnapshot(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshot loads a snapshot through a read-only memory map.
func ReadSnapshot(path string) (*Mesh, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to map snapshot: %w", err)
	}
	defer r.Close()

	if r.Len() < headerSize {
		return nil, fmt.Errorf("%w: file too short (%d bytes)", ErrBadSnapshot, r.Len())
	}

	headerBuf := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBuf, 0); err != nil {
		return nil, err
	}
	header, err := parseHeader(headerBuf)
	if err != nil {
		return nil, err
	}
	if int64(headerSize)+int64(header.PayloadSz) > int64(r.Len()) {
		return nil, fmt.Errorf("%w: truncated payload", ErrBadSnapshot)
	}

	payload := pools.GetBytes(int(header.PayloadSz))
	defer pools.PutBytes(payload)
	if _, err := r.ReadAt(payload, int64(headerSize)); err != nil {
		return nil, err
	}

	return decodePayload(header, payload)
}

// DecodeSnapshot decodes a snapshot held in memory.
func DecodeSnapshot(data []byte) (*Mesh, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: input too short (%d bytes)", ErrBadSnapshot, len(data))
	}
	header, err := parseHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}
	payload := data[headerSize:]
	if len(payload) < int(header.PayloadSz) {
		return nil, fmt.Errorf("%w: truncated payload", ErrBadSnapshot)
	}
	return decodePayload(header, payload[:header.PayloadSz])
}

func parseHeader(buf []byte) (SnapshotHeader, error) {
	var header SnapshotHeader
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &header); err != nil {
		return header, err
	}
	if header.Magic != SnapshotMagic {
		return header, fmt.Errorf("%w: invalid magic %x", ErrBadSnapshot, header.Magic)
	}
	if header.Version != SnapshotVersion {
		return header, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, header.Version)
	}
	return header, nil
}

func decodePayload(header SnapshotHeader, payload []byte) (*Mesh, error) {
	if sum := crc32.ChecksumIEEE(payload); sum != header.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch (got %08x, want %08x)", ErrBadSnapshot, sum, header.Checksum)
	}

	n, err := snappy.DecodedLen(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	raw := pools.GetBytes(n)
	defer pools.PutBytes(raw)

	raw, err = snappy.Decode(raw, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	var m Mesh
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return &m, nil
}
