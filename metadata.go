package labsite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// DateLayout is the layout of every date field in content metadata.
const DateLayout = "2006-01-02"

var (
	// ErrMissingKey is returned when a content file lacks a required metadata key.
	ErrMissingKey = errors.New("missing metadata key")
	// ErrInvalidDate is returned when a date field is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidYear is returned when a year field is not an integer.
	ErrInvalidYear = errors.New("invalid year")
)

// Metadata is the parsed header block of a content file.
type Metadata struct {
	Path   string
	Fields map[string]string
	Date   time.Time // zero when the file has no date key
	Body   string
}

// Get returns the value for key, or "" when absent.
func (m Metadata) Get(key string) string {
	return m.Fields[key]
}

// Has reports whether key was present in the header, even with an empty value.
func (m Metadata) Has(key string) bool {
	_, ok := m.Fields[key]
	return ok
}

// Require returns the value for key or an error wrapping ErrMissingKey.
func (m Metadata) Require(key string) (string, error) {
	v, ok := m.Fields[key]
	if !ok {
		return "", fmt.Errorf("%s: %w %q", m.Path, ErrMissingKey, key)
	}
	return v, nil
}

// ParseMetadataFile reads path and parses its metadata header.
func ParseMetadataFile(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()
	m, err := ParseMetadata(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ParseMetadata parses "key: value" lines up to the first blank line.
// Keys are lower-cased; everything after the blank line is returned as Body.
func ParseMetadata(r io.Reader) (Metadata, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Metadata{}, err
	}
	m := Metadata{Fields: make(map[string]string)}
	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			m.Body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "date" {
			d, err := ParseDate(value)
			if err != nil {
				return Metadata{}, err
			}
			m.Date = d
		}
		m.Fields[key] = value
	}
	return m, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseList normalizes a comma-separated string or a slice into trimmed entries.
// Empty entries are dropped. Other types yield nil.
func ParseList(v any) []string {
	switch vals := v.(type) {
	case string:
		return FilterEmpty(strings.Split(vals, ","))
	case []string:
		return FilterEmpty(vals)
	case []any:
		strs := make([]string, 0, len(vals))
		for _, x := range vals {
			strs = append(strs, fmt.Sprint(x))
		}
		return FilterEmpty(strs)
	default:
		return nil
	}
}
