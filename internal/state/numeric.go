package state

import "fmt"

// Flatten linearises a scalar or an arbitrarily nested sequence of scalars
// depth first. Mappings and text leaves are rejected.
func Flatten(n Node) ([]float64, error) {
	out := make([]float64, 0, 16)
	if err := flattenInto(&out, n); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out *[]float64, n Node) error {
	switch v := n.(type) {
	case Scalar:
		*out = append(*out, float64(v))
	case Sequence:
		for i, item := range v {
			if err := flattenInto(out, item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case nil, Null:
		return fmt.Errorf("%w: null value", ErrShape)
	default:
		return fmt.Errorf("%w: %s is not numeric", ErrShape, v.Kind())
	}
	return nil
}

// Matrix reads a sequence of rows, each a sequence of at least minCols scalars.
func Matrix(n Node, minCols int) ([][]float64, error) {
	seq, ok := n.(Sequence)
	if !ok {
		return nil, fmt.Errorf("%w: expected sequence of rows, got %s", ErrShape, kindOf(n))
	}

	rows := make([][]float64, len(seq))
	for i, item := range seq {
		cols, ok := item.(Sequence)
		if !ok {
			return nil, fmt.Errorf("%w: row %d: expected sequence, got %s", ErrShape, i, kindOf(item))
		}
		if len(cols) < minCols {
			return nil, fmt.Errorf("%w: row %d: %d columns, need at least %d", ErrShape, i, len(cols), minCols)
		}

		row := make([]float64, len(cols))
		for j, c := range cols {
			s, ok := c.(Scalar)
			if !ok {
				return nil, fmt.Errorf("%w: row %d col %d: expected scalar, got %s", ErrShape, i, j, kindOf(c))
			}
			row[j] = float64(s)
		}
		rows[i] = row
	}

	return rows, nil
}

func kindOf(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
