package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// ErrNotFinalized is returned when a graph changed since its last Finalize.
var ErrNotFinalized = errors.New("schedule is not finalized")

// Format selects a rendition.
type Format string

const (
	FormatXML Format = "xml"
	FormatHCL Format = "hcl"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatXML, FormatHCL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want xml or hcl)", s)
	}
}

// Extension returns the file extension for documents of this format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Write serializes root in the given format.
func Write(w io.Writer, root *schedule.Node, f Format) error {
	switch f {
	case FormatXML:
		return WriteXML(w, root)
	case FormatHCL:
		return WriteHCL(w, root)
	default:
		return fmt.Errorf("unknown document format %q", f)
	}
}

// Render is Write into a byte slice.
func Render(root *schedule.Node, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash returns the hex encoded SHA-256 of a rendered document.
func Hash(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

func checkFinalized(root *schedule.Node) error {
	if root == nil {
		return errors.New("schedule is nil")
	}
	if !root.Finalized() {
		return fmt.Errorf("%s: %w", root.Path(), ErrNotFinalized)
	}
	return nil
}
