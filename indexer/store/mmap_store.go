package store

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Source provides read-only access to stored points.
type Source interface {
	// Header returns the decoded file header.
	Header() *Header
	// Len returns the number of records.
	Len() int
	// Record decodes the i-th record.
	Record(i int) Record
	// Close releases resources (e.g. unmaps the file).
	Close() error
}

// MmapSource is a Source backed by an mmap'd file.
type MmapSource struct {
	f      *os.File
	data   mmap.MMap
	header *Header
}

// OpenPoints opens a fixture file and maps it read-only.
func OpenPoints(path string) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	s := &MmapSource{f: f, data: m}
	h, err := DecodeHeader(m)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// compare by division so a corrupt Count cannot overflow the size
	if room := uint64(len(m)-HeaderSize) / RecordSize; h.Count > room {
		s.Close()
		return nil, fmt.Errorf("open %s: %w: header claims %d records, file holds %d", path, ErrTruncated, h.Count, room)
	}
	s.header = h
	return s, nil
}

// Header returns the decoded header.
func (s *MmapSource) Header() *Header {
	return s.header
}

// Len returns the number of records.
func (s *MmapSource) Len() int {
	if s.header == nil {
		return 0
	}
	return int(s.header.Count)
}

// Record decodes the i-th record. It panics if i is out of range.
func (s *MmapSource) Record(i int) Record {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("store: record %d out of range [0,%d)", i, s.Len()))
	}
	off := HeaderSize + i*RecordSize
	return GetRecord(s.data[off : off+RecordSize])
}

// Close unmaps the file and closes it.
func (s *MmapSource) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return err
		}
		s.data = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}
