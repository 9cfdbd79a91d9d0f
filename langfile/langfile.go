// Package langfile reads and writes flat key=value language files.
//
// Each line holds one entry; the key ends at the first '='. Keys and values
// are written verbatim with no escaping, and entry order is preserved in
// both directions.
//
// As in Minecraft's .lang files, a line starting with '#' is a comment even
// when it contains '='. Write refuses entries that would read back
// differently: keys that start with '#' or contain '=' or a line break, and
// values that contain a newline or end in a carriage return.
package langfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one key=value line.
type Entry struct {
	Key   string
	Value string
}

const bom = "\uFEFF"

// ErrUnrepresentable is returned by Write for an entry that a language file
// cannot hold.
var ErrUnrepresentable = errors.New("entry cannot be written to a language file")

// Parse reads entries from r. Blank lines, lines starting with '#' and
// lines without '=' are skipped. A leading UTF-8 byte order mark and
// trailing carriage returns are removed.
func Parse(r io.Reader) ([]Entry, error) {
	entries := []Entry{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning language file: %w", err)
	}
	return entries, nil
}

// ReadFile parses the language file at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Write writes one key=value line per entry. Entries are checked before
// anything is written.
func Write(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if err := check(e, i == 0); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.Key)
		bw.WriteByte('=')
		bw.WriteString(e.Value)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func check(e Entry, first bool) error {
	switch {
	case strings.HasPrefix(e.Key, "#"):
		return fmt.Errorf("%w: key %q starts a comment", ErrUnrepresentable, e.Key)
	case strings.ContainsAny(e.Key, "=\r\n"):
		return fmt.Errorf("%w: key %q contains a separator", ErrUnrepresentable, e.Key)
	case first && strings.HasPrefix(e.Key, bom):
		return fmt.Errorf("%w: key %q starts with a byte order mark", ErrUnrepresentable, e.Key)
	case strings.Contains(e.Value, "\n"), strings.HasSuffix(e.Value, "\r"):
		return fmt.Errorf("%w: value of %q spans lines", ErrUnrepresentable, e.Key)
	}
	return nil
}

// WriteFile writes entries to path, creating parent directories. The file
// is written to a temporary sibling first and renamed into place, so a
// failed write leaves any previous file untouched.
func WriteFile(path string, entries []Entry) error {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// ToMap indexes entries by key. Later duplicates win.
func ToMap(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}
