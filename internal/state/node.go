// Package state models simulation state snapshots as a tree of typed nodes
// and provides path based access into them.
package state

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrPathNotFound is returned when a path segment does not exist in the structure.
	ErrPathNotFound = errors.New("path not found")

	// ErrShape is returned when the structure does not have the shape a caller expects.
	ErrShape = errors.New("unexpected shape")

	// ErrEmptyEpisode is returned for an episode that holds no snapshots.
	ErrEmptyEpisode = errors.New("episode has no snapshots")
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	KindScalar Kind = iota
	KindText
	KindSequence
	KindMapping
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindNull:
		return "null"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one value of a snapshot tree.
type Node interface {
	Kind() Kind
}

// Scalar is a numeric leaf.
type Scalar float64

// Text is a non-numeric leaf.
type Text string

// Sequence is an ordered list of nodes.
type Sequence []Node

// Mapping is a string keyed set of nodes.
type Mapping map[string]Node

// Null is an explicit null leaf. It is kept in place so that array
// positions keep matching entity indices.
type Null struct{}

func (Scalar) Kind() Kind   { return KindScalar }
func (Text) Kind() Kind     { return KindText }
func (Sequence) Kind() Kind { return KindSequence }
func (Mapping) Kind() Kind  { return KindMapping }
func (Null) Kind() Kind     { return KindNull }

// FromAny converts a value produced by encoding/json or yaml.v3 decoding
// into a Node tree. Booleans become 0/1 scalars, nil becomes Null.
func FromAny(v any) (Node, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Node:
		return t, nil
	case float64:
		return Scalar(t), nil
	case float32:
		return Scalar(t), nil
	case int:
		return Scalar(t), nil
	case int64:
		return Scalar(t), nil
	case int32:
		return Scalar(t), nil
	case uint:
		return Scalar(t), nil
	case uint64:
		return Scalar(t), nil
	case bool:
		if t {
			return Scalar(1), nil
		}
		return Scalar(0), nil
	case string:
		return Text(t), nil
	case []any:
		seq := make(Sequence, len(t))
		for i, item := range t {
			n, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			seq[i] = n
		}
		return seq, nil
	case []float64:
		seq := make(Sequence, len(t))
		for i, f := range t {
			seq[i] = Scalar(f)
		}
		return seq, nil
	case map[string]any:
		m := make(Mapping, len(t))
		for k, item := range t {
			n, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = n
		}
		return m, nil
	case map[any]any:
		m := make(Mapping, len(t))
		for k, item := range t {
			key := fmt.Sprint(k)
			n, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m[key] = n
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value of type %T", ErrShape, v)
	}
}
