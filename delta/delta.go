// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package delta implements the 16-byte delta operation, its log
// container, and the last-write-wins merge operator that lets the
// external KV store apply incremental edge mutations lazily at read
// time.
package delta

import (
	"encoding/binary"
	"sort"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// OpType distinguishes an add from a remove within a delta operation.
type OpType uint32

const (
	// AddNeighbor appends a neighbor.
	AddNeighbor OpType = 0
	// RemoveNeighbor removes a neighbor.
	RemoveNeighbor OpType = 1
)

// Valid reports whether t is a recognized operation type.
func (t OpType) Valid() bool {
	return t == AddNeighbor || t == RemoveNeighbor
}

// EncodedSize is the fixed byte length of an encoded Operation.
const EncodedSize = 16

// Operation is a single timestamped change to a vertex's neighbor list.
// Encoded little-endian, unlike every other on-disk format in this
// engine, to match the natural host layout of the merge operator's hot
// path.
type Operation struct {
	Timestamp uint64
	Neighbor  types.VId
	OpType    OpType
}

// Encode returns op's 16-byte little-endian encoding:
// [timestamp u64 LE][neighbor u32 LE][op_type u32 LE].
func (op Operation) Encode() [EncodedSize]byte {
	var b [EncodedSize]byte
	binary.LittleEndian.PutUint64(b[0:8], op.Timestamp)
	binary.LittleEndian.PutUint32(b[8:12], uint32(op.Neighbor))
	binary.LittleEndian.PutUint32(b[12:16], uint32(op.OpType))
	return b
}

// DecodeOperation decodes a single 16-byte operation. Rejects a buffer
// of the wrong length or an unrecognized op_type.
func DecodeOperation(b []byte) (Operation, error) {
	if len(b) != EncodedSize {
		return Operation{}, lsmerr.NewFormat("delta: operation must be %d bytes, got %d", EncodedSize, len(b))
	}
	opType := OpType(binary.LittleEndian.Uint32(b[12:16]))
	if !opType.Valid() {
		return Operation{}, lsmerr.NewFormat("delta: invalid op_type %d", opType)
	}
	return Operation{
		Timestamp: binary.LittleEndian.Uint64(b[0:8]),
		Neighbor:  types.VId(binary.LittleEndian.Uint32(b[8:12])),
		OpType:    opType,
	}, nil
}

// EncodeBatch concatenates the raw 16-byte encoding of every op, with no
// length prefix. This is the operand format the merge operator's
// partial-merge path accumulates.
func EncodeBatch(ops []Operation) []byte {
	out := make([]byte, 0, len(ops)*EncodedSize)
	for _, op := range ops {
		enc := op.Encode()
		out = append(out, enc[:]...)
	}
	return out
}

// DecodeBatch decodes a buffer of concatenated 16-byte operations with
// no length prefix. Rejects a length that is not a multiple of 16 or
// any operand with an unrecognized op_type.
func DecodeBatch(b []byte) ([]Operation, error) {
	if len(b)%EncodedSize != 0 {
		return nil, lsmerr.NewFormat("delta: batch length %d is not a multiple of %d", len(b), EncodedSize)
	}
	count := len(b) / EncodedSize
	ops := make([]Operation, count)
	for i := 0; i < count; i++ {
		op, err := DecodeOperation(b[i*EncodedSize : (i+1)*EncodedSize])
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

// Log is a vertex's delta log: a length-prefixed, ascending-by-timestamp
// sequence of operations.
type Log struct {
	Ops []Operation
}

// FromOps builds a Log from ops, inserting each in timestamp order.
func FromOps(ops []Operation) Log {
	var l Log
	for _, op := range ops {
		l.AddOp(op)
	}
	return l
}

// Len returns the number of operations in the log.
func (l Log) Len() int { return len(l.Ops) }

// AddOp inserts op into the log at its sorted-by-timestamp position via
// binary search, so a full resort is never needed to append a single
// operation.
func (l *Log) AddOp(op Operation) {
	i := sort.Search(len(l.Ops), func(i int) bool { return l.Ops[i].Timestamp >= op.Timestamp })
	l.Ops = append(l.Ops, Operation{})
	copy(l.Ops[i+1:], l.Ops[i:])
	l.Ops[i] = op
}

// Encode returns the length-prefixed wire form: [count u32 LE][op]...
func (l Log) Encode() []byte {
	out := make([]byte, 4, 4+len(l.Ops)*EncodedSize)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(l.Ops)))
	out = append(out, EncodeBatch(l.Ops)...)
	return out
}

// Decode parses a length-prefixed Log as produced by Encode.
func Decode(b []byte) (Log, error) {
	if len(b) < 4 {
		return Log{}, lsmerr.NewFormat("delta: log too short for count header")
	}
	count := binary.LittleEndian.Uint32(b[0:4])
	want := 4 + int(count)*EncodedSize
	if len(b) != want {
		return Log{}, lsmerr.NewFormat("delta: log length mismatch, expected %d got %d", want, len(b))
	}
	ops, err := DecodeBatch(b[4:])
	if err != nil {
		return Log{}, err
	}
	return Log{Ops: ops}, nil
}

// Merge combines logs under last-write-wins semantics: for each
// neighbor, the surviving operation is the one with the largest
// timestamp across every input log; the result is sorted ascending by
// timestamp.
func Merge(logs []Log) Log {
	if len(logs) == 0 {
		return Log{}
	}

	latest := make(map[types.VId]Operation)
	for _, log := range logs {
		for _, op := range log.Ops {
			cur, ok := latest[op.Neighbor]
			if !ok || op.Timestamp > cur.Timestamp {
				latest[op.Neighbor] = op
			}
		}
	}

	ops := make([]Operation, 0, len(latest))
	for _, op := range latest {
		ops = append(ops, op)
	}
	sortByTimestamp(ops)
	return Log{Ops: ops}
}

// sortByTimestamp is an insertion sort: per-vertex logs are small.
func sortByTimestamp(ops []Operation) {
	for i := 1; i < len(ops); i++ {
		for j := i; j > 0 && ops[j-1].Timestamp > ops[j].Timestamp; j-- {
			ops[j-1], ops[j] = ops[j], ops[j-1]
		}
	}
}

// FullMerge implements the KV engine's full-merge callback: base is the
// previously stored, length-prefixed Log (nil if absent); operands are
// raw concatenated-operation batches as produced by PartialMerge or by a
// single append. Returns the re-encoded, merged Log, or an error if
// either base or any operand fails to decode.
func FullMerge(base []byte, operands [][]byte) ([]byte, error) {
	logs := make([]Log, 0, 1+len(operands))

	if base != nil {
		baseLog, err := Decode(base)
		if err != nil {
			return nil, err
		}
		logs = append(logs, baseLog)
	}

	for _, operand := range operands {
		ops, err := DecodeBatch(operand)
		if err != nil {
			return nil, err
		}
		logs = append(logs, FromOps(ops))
	}

	return Merge(logs).Encode(), nil
}

// PartialMerge implements the KV engine's partial-merge callback:
// operands-only, raw concatenation with no interpretation. The result
// remains legal input to a later FullMerge operand list.
func PartialMerge(operands [][]byte) ([]byte, error) {
	total := 0
	for _, operand := range operands {
		if len(operand)%EncodedSize != 0 {
			return nil, lsmerr.NewFormat("delta: operand length %d is not a multiple of %d", len(operand), EncodedSize)
		}
		total += len(operand)
	}

	out := make([]byte, 0, total)
	for _, operand := range operands {
		out = append(out, operand...)
	}
	return out, nil
}
