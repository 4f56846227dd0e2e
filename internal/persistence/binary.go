package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// writer is a small deterministic binary encoder: every write is a
// fixed-width or length-prefixed field, and every collection this
// package writes is emitted in caller-supplied (always pre-sorted)
// order. Unlike encoding/gob, which does not guarantee map iteration
// order, or a protobuf schema (none of the retrieval pack's example
// repos carry compiled .proto bindings for this), writing the bytes by
// hand is what makes the serialize->deserialize bitwise round-trip of
// spec.md §8 R1 achievable without a code-generation step this exercise
// cannot run.
type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer { return &writer{} }

func (w *writer) Bytes() []byte { return w.buf.Bytes() }

func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) i32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *writer) i64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *writer) f64(v float64) {
	w.i64(int64(math.Float64bits(v)))
}

func (w *writer) str(s string) {
	w.i32(int32(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) strSlice(ss []string) {
	w.i32(int32(len(ss)))
	for _, s := range ss {
		w.str(s)
	}
}

// reader parses bytes produced by writer, in the same field order.
type reader struct {
	buf *bytes.Reader
}

func newReader(b []byte) *reader { return &reader{buf: bytes.NewReader(b)} }

func (r *reader) u8() (uint8, error) { return r.buf.ReadByte() }

func (r *reader) bool() (bool, error) {
	b, err := r.u8()
	return b != 0, err
}

func (r *reader) i32() (int32, error) {
	var b [4]byte
	if _, err := r.buf.Read(b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func (r *reader) i64() (int64, error) {
	var b [8]byte
	if _, err := r.buf.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}

func (r *reader) f64() (float64, error) {
	v, err := r.i64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (r *reader) str() (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("persistence: negative string length %d", n)
	}
	b := make([]byte, n)
	if _, err := r.buf.Read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) strSlice() ([]string, error) {
	n, err := r.i32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		s, err := r.str()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
