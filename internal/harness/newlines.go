package harness

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

// ExpectedNewlines recomputes line start offsets from raw bytes: 0, then
// the offset right after every '\n'.
func ExpectedNewlines(raw []byte) []uint32 {
	out := make([]uint32, 1, bytes.Count(raw, []byte{'\n'})+1)
	for off := 0; ; {
		i := bytes.IndexByte(raw[off:], '\n')
		if i < 0 {
			return out
		}
		off += i + 1
		v, err := safecast.Conv[uint32](off)
		if err != nil {
			// больше 4 GiB: дальше смещения не представимы
			return out
		}
		out = append(out, v)
	}
}

// CheckNewlines compares the engine's offsets against ExpectedNewlines.
func CheckNewlines(raw []byte, got []uint32) error {
	return checkNewlines(raw, got, "")
}

func checkNewlines(raw []byte, got []uint32, fixture string) error {
	want := ExpectedNewlines(raw)
	for i := 0; i < min(len(want), len(got)); i++ {
		if want[i] != got[i] {
			return checkErr(KindNewlines, fixture, nil, "line %d starts at %d, engine says %d", i+1, want[i], got[i])
		}
	}
	if len(want) != len(got) {
		return checkErr(KindNewlines, fixture, nil, "%d line starts expected, engine returned %d", len(want), len(got))
	}
	return nil
}

// FormatOffsets renders offsets as "[0, 4, 9]".
func FormatOffsets(offs []uint32) string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, o := range offs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", o)
	}
	b.WriteByte(']')
	return b.String()
}
