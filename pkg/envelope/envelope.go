// Package envelope implements the self-describing on-disk container for a
// persisted batch: the table it belongs to, the wall-clock time it was
// persisted, the record count, and the records themselves.
//
// The wire format is YAML. YAML was chosen over JSON because it round-trips
// non-finite floats (NaN, +Inf, -Inf) as the literal tokens .nan, .inf and
// -.inf without any caller-side quoting convention, which batch records
// (raw metric samples in particular) may legitimately contain.
package envelope

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrFormat is returned when an envelope cannot be encoded or decoded.
var ErrFormat = errors.New("envelope: format error")

// Envelope is the decoded, on-disk representation of one persisted batch.
// Records are kept as yaml.Node so a single Envelope value can hold any
// record schema; callers recover a concrete type with DecodeRecords.
type Envelope struct {
	Table       string      `yaml:"table"`
	Timestamp   time.Time   `yaml:"timestamp"`
	RecordCount int         `yaml:"record_count"`
	Records     []yaml.Node `yaml:"records"`
}

// New builds an Envelope from a concrete, non-empty record slice. It fails
// with ErrFormat if any record cannot be represented in YAML.
func New[T any](table string, records []T, ts time.Time) (Envelope, error) {
	if len(records) == 0 {
		return Envelope{}, fmt.Errorf("envelope: empty batch")
	}
	nodes := make([]yaml.Node, len(records))
	for i, r := range records {
		if err := nodes[i].Encode(r); err != nil {
			return Envelope{}, fmt.Errorf("%w: encoding record %d: %v", ErrFormat, i, err)
		}
	}
	return Envelope{
		Table:       table,
		Timestamp:   ts,
		RecordCount: len(records),
		Records:     nodes,
	}, nil
}

// Encode serializes the envelope to its on-disk byte representation.
func Encode(e Envelope) ([]byte, error) {
	b, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return b, nil
}

// Decode parses a byte stream into an Envelope. It does not interpret the
// record schema; use DecodeRecords for that.
func Decode(data []byte) (Envelope, error) {
	var e Envelope
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if e.RecordCount != len(e.Records) {
		return Envelope{}, fmt.Errorf("%w: record_count %d does not match %d decoded records", ErrFormat, e.RecordCount, len(e.Records))
	}
	return e, nil
}

// DecodeRecords recovers the concrete record type from an Envelope produced
// by New[T] (or any envelope whose records are structurally compatible
// with T).
func DecodeRecords[T any](e Envelope) ([]T, error) {
	out := make([]T, len(e.Records))
	for i := range e.Records {
		if err := e.Records[i].Decode(&out[i]); err != nil {
			return nil, fmt.Errorf("%w: decoding record %d: %v", ErrFormat, i, err)
		}
	}
	return out, nil
}
