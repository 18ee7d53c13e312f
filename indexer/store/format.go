package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// HeaderSize is the fixed header size.
	HeaderSize = 64

	// Magic identifies a point fixture file.
	Magic = "QTPT"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// RecordSize is x, y as float64 plus a 16-byte identifier.
	RecordSize = 8 + 8 + 16
)

var (
	ErrShortHeader = errors.New("header too short")
	ErrBadMagic    = errors.New("invalid magic")
	ErrBadVersion  = errors.New("unsupported format version")
	ErrTruncated   = errors.New("fixture file truncated")
)

// Header holds the fixture metadata.
type Header struct {
	Magic    [4]byte
	Version  uint16
	_        uint16
	Count    uint64
	MinX     float64
	MinY     float64
	MaxX     float64
	MaxY     float64
	Reserved [16]byte // pad to 64 bytes
}

// Record is one stored point.
type Record struct {
	X  float64
	Y  float64
	ID [16]byte
}

// EncodeHeader writes the header to a byte slice, padded to HeaderSize.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("header is nil")
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	var w bytes.Buffer
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	b := w.Bytes()
	if len(b) < HeaderSize {
		padded := make([]byte, HeaderSize)
		copy(padded, b)
		return padded, nil
	}
	return b, nil
}

// DecodeHeader reads the header from src.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, ErrShortHeader
	}
	var h Header
	r := bytes.NewReader(src[:HeaderSize])
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	return &h, nil
}

// PutRecord encodes r into dst, which must hold RecordSize bytes.
func PutRecord(dst []byte, r Record) {
	binary.LittleEndian.PutUint64(dst[0:8], math.Float64bits(r.X))
	binary.LittleEndian.PutUint64(dst[8:16], math.Float64bits(r.Y))
	copy(dst[16:32], r.ID[:])
}

// GetRecord decodes one record from src.
func GetRecord(src []byte) Record {
	var r Record
	r.X = math.Float64frombits(binary.LittleEndian.Uint64(src[0:8]))
	r.Y = math.Float64frombits(binary.LittleEndian.Uint64(src[8:16]))
	copy(r.ID[:], src[16:32])
	return r
}
