package iplist

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
)

const tempFilePattern = "iplist_*.txt"

// writeLines is swapped in tests to simulate a failing disk.
var writeLines = func(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteToTempFile writes the addresses, sorted as strings, one per line, to
// a newly created temporary file and returns its path. The caller owns the
// file and must delete it.
func (l *IPList) WriteToTempFile() (string, error) {
	return l.writeTempFile("")
}

func (l *IPList) writeTempFile(dir string) (string, error) {
	f, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return "", &PathError{Kind: ErrExport, Path: dir, Err: err}
	}
	path := f.Name()
	if err := writeLines(f, l.Addresses()); err != nil {
		_ = f.Close()
		l.removeTempFile(path)
		return "", &PathError{Kind: ErrExport, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		l.removeTempFile(path)
		return "", &PathError{Kind: ErrExport, Path: path, Err: err}
	}
	l.log.Debugf("Wrote IP list to temporary file: %s", path)
	return path, nil
}

// WithTempFile exports to a temporary file, passes its path to fn and
// deletes the file once fn returns or panics.
func (l *IPList) WithTempFile(fn func(path string) error) error {
	path, err := l.WriteToTempFile()
	if err != nil {
		return err
	}
	defer l.removeTempFile(path)
	return fn(path)
}

func (l *IPList) removeTempFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.log.Warnf("Failed to delete temporary file %s: %v", path, err)
		return
	}
	l.log.Debugf("Deleted temporary file: %s", path)
}
