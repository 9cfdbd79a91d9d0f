package langfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "simple",
			input: "item.foo=Foo\nitem.bar=Bar\n",
			want:  []Entry{{"item.foo", "Foo"}, {"item.bar", "Bar"}},
		},
		{
			name:  "value containing equals",
			input: "gt.formula=a=b+c\n",
			want:  []Entry{{"gt.formula", "a=b+c"}},
		},
		{
			name:  "comments and blank lines",
			input: "# header\n\nitem.foo=Foo\n",
			want:  []Entry{{"item.foo", "Foo"}},
		},
		{
			name:  "crlf and bom",
			input: "\uFEFFitem.foo=Foo\r\nitem.bar=Bar\r\n",
			want:  []Entry{{"item.foo", "Foo"}, {"item.bar", "Bar"}},
		},
		{
			name:  "line without separator",
			input: "garbage\nitem.foo=Foo",
			want:  []Entry{{"item.foo", "Foo"}},
		},
		{
			name:  "empty value kept",
			input: "item.empty=\n",
			want:  []Entry{{"item.empty", ""}},
		},
		{
			name:  "whitespace kept verbatim",
			input: "item.pad= spaced \n",
			want:  []Entry{{"item.pad", " spaced "}},
		},
		{
			name:  "comment containing separator",
			input: "#tooltip.key=x\nitem.foo=Foo\n",
			want:  []Entry{{"item.foo", "Foo"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var b strings.Builder
	err := Write(&b, []Entry{{"item.foo", "酒"}, {"item.bar", "§e%s Bar"}})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "item.foo=酒\nitem.bar=§e%s Bar\n"
	if b.String() != want {
		t.Errorf("Write = %q, want %q", b.String(), want)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zh", "GregTech.lang")
	entries := []Entry{
		{"item.foo", "酒"},
		{"item.bar", "巴"},
		{"item.baz", "Baz = 3"},
		{"item.foo", "duplicate keys keep their position"},
	}

	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GregTech.lang")
	if err := os.WriteFile(path, []byte("old=value\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, []Entry{{"new", "value"}}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new=value\n" {
		t.Errorf("file content = %q", data)
	}

	// No temporary files left behind
	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("expected 1 file in dir, got %d", len(files))
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.lang"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestToMap(t *testing.T) {
	m := ToMap([]Entry{{"a", "1"}, {"b", "2"}, {"a", "3"}})

	if m["a"] != "3" || m["b"] != "2" || len(m) != 2 {
		t.Errorf("unexpected map: %v", m)
	}
}

func TestWrite_Unrepresentable(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"comment key", []Entry{{"#tooltip.key", "x"}}},
		{"key with separator", []Entry{{"a=b", "c"}}},
		{"key with newline", []Entry{{"a\nb", "c"}}},
		{"value with newline", []Entry{{"a", "line one\nline two"}}},
		{"trailing carriage return", []Entry{{"a", "b\r"}}},
		{"leading byte order mark", []Entry{{"\uFEFFa", "b"}}},
		{"later entry", []Entry{{"ok", "fine"}, {"a", "b\r"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			err := Write(&b, tt.entries)
			if !errors.Is(err, ErrUnrepresentable) {
				t.Fatalf("expected ErrUnrepresentable, got %v", err)
			}
			if b.Len() != 0 {
				t.Errorf("nothing should be written, got %q", b.String())
			}
		})
	}
}

func TestWrite_RoundTripEdgeCases(t *testing.T) {
	entries := []Entry{
		{"", "empty key"},
		{"item.hash", "#not a comment"},
		{"item.cr", "a\rb"},
		{"item.bom", "\uFEFF"},
		{"gt.formula", "a=b"},
	}

	var b strings.Builder
	if err := Write(&b, entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_Unrepresentable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GregTech.lang")
	if err := os.WriteFile(path, []byte("old=value\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(path, []Entry{{"#x", "y"}})
	if !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("expected ErrUnrepresentable, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "old=value\n" {
		t.Errorf("existing file changed: %q", data)
	}
}
