package enzyme

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// StdinPath makes Open read from standard input.
const StdinPath = "-"

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens an identifier list. Gzip input is detected by the magic number or a .gz suffix
// and decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := pgzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// ReadIdentifiers returns one identifier per line with the line terminator removed.
// Blank lines are kept as empty identifiers and duplicates are kept in order.
func ReadIdentifiers(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var ids []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			ids = append(ids, chomp(line))
		}
		if err == io.EOF {
			return ids, nil
		} else if err != nil {
			return nil, err
		}
	}
}

func chomp(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
