package document

import (
	"fmt"
	"io"
	"os"
)

// Truncater is the subset of *os.File needed to replace a file's content in place.
type Truncater interface {
	io.WriteSeeker
	Truncate(size int64) error
}

// Edit loads the records stored at path, passes each one to apply in order,
// and writes the full record set back into the same file. It returns the
// number of records processed. If decoding or any apply call fails, the file
// is left exactly as it was.
func Edit[T any](path string, required []string, apply func(*T) error) (count int, err error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	records, err := Decode[T](file, required)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if apply != nil {
		for i := range records {
			if err := apply(&records[i]); err != nil {
				return 0, fmt.Errorf("process document %d of %s: %w", i+1, path, err)
			}
		}
	}
	data, err := Encode(records)
	if err != nil {
		return 0, fmt.Errorf("serialize %s: %w", path, err)
	}
	if err := Overwrite(file, data); err != nil {
		return 0, fmt.Errorf("rewrite %s: %w", path, err)
	}
	return len(records), nil
}

// Overwrite replaces everything in f with data: rewind, truncate, write.
func Overwrite(f Truncater, data []byte) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
