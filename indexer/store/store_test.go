package store

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{X: float64(i) * 1.5, Y: -float64(i)}
		recs[i].ID[0] = byte(i)
		recs[i].ID[15] = 0xab
	}
	return recs
}

func TestHeaderSize(t *testing.T) {
	b, err := EncodeHeader(&Header{Count: 3})
	require.NoError(t, err)
	assert.Len(t, b, HeaderSize)
	assert.Equal(t, Magic, string(b[:4]))

	h, err := DecodeHeader(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), h.Count)
	assert.Equal(t, FormatVersion, h.Version)
}

func TestDecodeHeaderErrors(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 10))
	assert.ErrorIs(t, err, ErrShortHeader)

	_, err = DecodeHeader(make([]byte, HeaderSize))
	assert.ErrorIs(t, err, ErrBadMagic)

	b, err := EncodeHeader(&Header{})
	require.NoError(t, err)
	b[4] = 9
	_, err = DecodeHeader(b)
	assert.ErrorIs(t, err, ErrBadVersion)
}

func TestWriteOpenPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pts.qtpt")
	recs := sampleRecords(100)
	require.NoError(t, WritePointsAtomic(path, [4]float64{-1, -2, 3, 4}, recs))

	src, err := OpenPoints(path)
	require.NoError(t, err)
	defer src.Close()

	var _ Source = src
	h := src.Header()
	assert.Equal(t, []float64{-1, -2, 3, 4}, []float64{h.MinX, h.MinY, h.MaxX, h.MaxY})
	require.Equal(t, len(recs), src.Len())
	for i, want := range recs {
		assert.Equal(t, want, src.Record(i))
	}
	assert.Panics(t, func() { src.Record(len(recs)) })

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

func TestOpenPointsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.qtpt")
	require.NoError(t, WritePoints(path, [4]float64{0, 0, 1, 1}, nil))
	src, err := OpenPoints(path)
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, 0, src.Len())
}

func TestOpenPointsTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.qtpt")
	require.NoError(t, WritePoints(path, [4]float64{0, 0, 1, 1}, sampleRecords(4)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-RecordSize/2], 0o644))

	_, err = OpenPoints(path)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpenPointsHugeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.qtpt")
	require.NoError(t, WritePoints(path, [4]float64{0, 0, 1, 1}, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Count sits at offset 8; 1<<59 records times 32 bytes wraps to zero
	for _, count := range []uint64{1 << 59, math.MaxUint64, 1} {
		binary.LittleEndian.PutUint64(data[8:16], count)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		_, err = OpenPoints(path)
		assert.ErrorIs(t, err, ErrTruncated, "count %d", count)
	}
}

func TestOpenPointsMissing(t *testing.T) {
	_, err := OpenPoints(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
