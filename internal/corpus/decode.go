package corpus

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Reader loads documents as text: it decodes the configured charset,
// drops a leading byte order mark and optionally applies a Unicode
// normalization form. Gold and predicted files must go through the same
// Reader so that both share one coordinate space.
type Reader struct {
	enc  encoding.Encoding
	form *norm.Form
}

// NewReader returns a Reader for a WHATWG charset label (e.g. "utf-8",
// "windows-1258") and a normalization form ("", "none", "nfc", "nfd",
// "nfkc", "nfkd").
func NewReader(charset, normalization string) (*Reader, error) {
	if charset == "" {
		charset = "utf-8"
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}

	form, err := parseForm(normalization)
	if err != nil {
		return nil, err
	}

	return &Reader{enc: enc, form: form}, nil
}

func parseForm(s string) (*norm.Form, error) {
	var f norm.Form
	switch strings.ToLower(s) {
	case "", "none":
		return nil, nil
	case "nfc":
		f = norm.NFC
	case "nfd":
		f = norm.NFD
	case "nfkc":
		f = norm.NFKC
	case "nfkd":
		f = norm.NFKD
	default:
		return nil, fmt.Errorf("unknown normalization form %q", s)
	}
	return &f, nil
}

// ReadFile reads and decodes path.
func (r *Reader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return r.Decode(data)
}

// Decode converts raw bytes to normalized text.
func (r *Reader) Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(r.enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if r.form != nil {
		out = r.form.Bytes(out)
	}
	return string(out), nil
}
