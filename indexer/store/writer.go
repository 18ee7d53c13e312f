package store

import (
	"bufio"
	"os"
)

// WritePoints writes a fixture file. bounds is [minX, minY, maxX, maxY].
func WritePoints(path string, bounds [4]float64, recs []Record) error {
	h := &Header{
		Count: uint64(len(recs)),
		MinX:  bounds[0],
		MinY:  bounds[1],
		MaxX:  bounds[2],
		MaxY:  bounds[3],
	}
	headerBytes, err := EncodeHeader(h)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}
	var buf [RecordSize]byte
	for _, r := range recs {
		PutRecord(buf[:], r)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// WritePointsAtomic writes to path+".tmp" and renames it over path.
func WritePointsAtomic(path string, bounds [4]float64, recs []Record) error {
	tmp := path + ".tmp"
	if err := WritePoints(tmp, bounds, recs); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	_ = os.Remove(path) // ignore error if not exists
	return os.Rename(tmp, path)
}
