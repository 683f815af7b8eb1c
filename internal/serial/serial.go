package serial

import (
	"bytes"
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"rubysnap/internal/ast"
)

// Format version; bump Minor for additive changes, Major for breaking ones.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

var magic = [4]byte{'R', 'B', 'S', 'N'}

var (
	ErrBadMagic       = errors.New("serial: not a serialized tree")
	ErrVersion        = errors.New("serial: unsupported format version")
	ErrSourceMismatch = errors.New("serial: source does not match serialized data")
	ErrMalformed      = errors.New("serial: malformed data")
)

// Header is the fixed prefix of a serialized tree.
type Header struct {
	Major, Minor, Patch uint8
	Fixture             string
	SourceLen           uint32
}

func (h Header) Version() string {
	return fmt.Sprintf("%d.%d.%d", h.Major, h.Minor, h.Patch)
}

// Dump serializes root. Identifier-like names are stored as locations into
// src, so Load needs the same source back.
func Dump(root *ast.ProgramNode, src []byte, fixture string) ([]byte, error) {
	if root == nil {
		return nil, errors.New("serial: nil tree")
	}
	srcLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, fmt.Errorf("serial: source too large: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write([]byte{VersionMajor, VersionMinor, VersionPatch})

	w := &writer{enc: msgpack.NewEncoder(&buf)}
	w.str(fixture)
	w.u32(srcLen)
	w.node(root)
	if w.err != nil {
		return nil, fmt.Errorf("serial: encode: %w", w.err)
	}
	return buf.Bytes(), nil
}

// ReadHeader decodes only the header.
func ReadHeader(data []byte) (Header, error) {
	h, _, err := readHeader(data)
	return h, err
}

func readHeader(data []byte) (Header, *reader, error) {
	var h Header
	if len(data) < len(magic)+3 || !bytes.Equal(data[:len(magic)], magic[:]) {
		return h, nil, ErrBadMagic
	}
	h.Major, h.Minor, h.Patch = data[4], data[5], data[6]
	if h.Major != VersionMajor {
		return h, nil, fmt.Errorf("%w: %s", ErrVersion, h.Version())
	}

	rest := bytes.NewReader(data[7:])
	dec := msgpack.NewDecoder(rest)
	var err error
	if h.Fixture, err = dec.DecodeString(); err != nil {
		return h, nil, fmt.Errorf("%w: fixture: %w", ErrMalformed, err)
	}
	if h.SourceLen, err = dec.DecodeUint32(); err != nil {
		return h, nil, fmt.Errorf("%w: source length: %w", ErrMalformed, err)
	}
	return h, &reader{dec: dec, rest: rest}, nil
}

// Load rebuilds the tree from data produced by Dump over the same src.
func Load(src, data []byte) (*ast.ProgramNode, error) {
	h, r, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if int(h.SourceLen) != len(src) {
		return nil, fmt.Errorf("%w: recorded length %d, got %d", ErrSourceMismatch, h.SourceLen, len(src))
	}

	r.src = src
	n := r.node()
	if r.err != nil {
		return nil, r.err
	}
	root, ok := n.(*ast.ProgramNode)
	if !ok {
		return nil, fmt.Errorf("%w: root is %s, want Program", ErrMalformed, kindOf(n))
	}
	return root, nil
}

func kindOf(n ast.Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
