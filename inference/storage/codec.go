package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/orrollo/NxBRE/inference"
)

// Binary fact layout:
//
//	[1]  negation (0/1)
//	[uv] type length + type bytes
//	[uv] member count
//	per member:
//	  [uv] slot name length + slot name bytes
//	  [1]  value tag
//	  payload (tag-dependent)
//
// uv = unsigned varint. Keys are signature-prefixed so one signature group
// maps to one contiguous key range.

const (
	tagString = byte('s')
	tagInt    = byte('i')
	tagFloat  = byte('f')
	tagBool   = byte('b')
	tagTime   = byte('t')
)

var keyPrefix = []byte("f/")

// encodeKey builds the storage key for a fact: "f/" + signature + 0x00 +
// the 8-byte combined hash.
func encodeKey(fact *inference.Atom) []byte {
	sig := fact.Signature()
	key := make([]byte, 0, len(keyPrefix)+len(sig)+1+8)
	key = append(key, keyPrefix...)
	key = append(key, sig...)
	key = append(key, 0)
	key = binary.BigEndian.AppendUint64(key, fact.LongHashCode())
	return key
}

// signaturePrefix builds the scan prefix covering one signature group.
func signaturePrefix(signature string) []byte {
	prefix := make([]byte, 0, len(keyPrefix)+len(signature)+1)
	prefix = append(prefix, keyPrefix...)
	prefix = append(prefix, signature...)
	prefix = append(prefix, 0)
	return prefix
}

// encodeFact serializes a ground fact. Function members are rejected;
// resolve them first. Formula members are stored as their literal values.
func encodeFact(fact *inference.Atom) ([]byte, error) {
	if !fact.IsFact() {
		return nil, fmt.Errorf("cannot store non-ground atom: %s", fact)
	}
	if fact.HasFunction() {
		return nil, fmt.Errorf("cannot store unresolved functions: %s", fact)
	}

	var buf bytes.Buffer
	if fact.IsNegative() {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	writeString(&buf, fact.Type())

	arity := fact.Arity()
	writeUvarint(&buf, uint64(arity))
	for i := 0; i < arity; i++ {
		writeString(&buf, fact.SlotName(i))
		if err := writeValue(&buf, fact.PredicateValue(i)); err != nil {
			return nil, fmt.Errorf("member %d of %s: %w", i, fact, err)
		}
	}
	return buf.Bytes(), nil
}

// decodeFact rebuilds a fact from its serialized form.
func decodeFact(data []byte) (*inference.Atom, error) {
	r := bytes.NewReader(data)

	negByte, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading negation: %w", err)
	}
	kind, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("reading type: %w", err)
	}
	arity, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading arity: %w", err)
	}

	members := make([]inference.Predicate, arity)
	for i := range members {
		slotName, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("reading slot name %d: %w", i, err)
		}
		value, err := readValue(r)
		if err != nil {
			return nil, fmt.Errorf("reading member %d: %w", i, err)
		}
		member := inference.NewIndividual(value)
		if slotName != "" {
			members[i] = inference.NewSlot(slotName, member)
		} else {
			members[i] = member
		}
	}

	if negByte != 0 {
		return inference.NewNegativeAtom(kind, members...), nil
	}
	return inference.NewAtom(kind, members...), nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	if n > uint64(r.Len()) {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", n, r.Len())
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return "", err
	}
	return string(out), nil
}

func writeValue(buf *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case string:
		buf.WriteByte(tagString)
		writeString(buf, v)
	case int64:
		buf.WriteByte(tagInt)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v))
		buf.Write(tmp[:])
	case float64:
		buf.WriteByte(tagFloat)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
		buf.Write(tmp[:])
	case bool:
		buf.WriteByte(tagBool)
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case time.Time:
		buf.WriteByte(tagTime)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v.UnixNano()))
		buf.Write(tmp[:])
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
	return nil
}

func readValue(r *bytes.Reader) (interface{}, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagString:
		return readString(r)
	case tagInt:
		var tmp [8]byte
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, err
		}
		return int64(binary.BigEndian.Uint64(tmp[:])), nil
	case tagFloat:
		var tmp [8]byte
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(tmp[:])), nil
	case tagBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case tagTime:
		var tmp [8]byte
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, err
		}
		return time.Unix(0, int64(binary.BigEndian.Uint64(tmp[:]))).UTC(), nil
	default:
		return nil, fmt.Errorf("unknown value tag %q", tag)
	}
}
