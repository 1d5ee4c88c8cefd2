package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TaskRef is a task identifier as it arrives from clients. Identifiers may be
// sent as JSON/YAML integers or strings; both decode to the same string form
// so that every later comparison is plain string equality.
type TaskRef string

// String returns the normalized identifier.
func (r TaskRef) String() string {
	return string(r)
}

// UnmarshalJSON accepts a JSON string or number.
func (r *TaskRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		*r = TaskRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: expected string or integer, got %s", ErrInvalidID, data)
	}
	id, err := normalizeNumber(n.String())
	if err != nil {
		return err
	}
	*r = TaskRef(id)
	return nil
}

// UnmarshalYAML accepts a YAML scalar of any type.
func (r *TaskRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected scalar", ErrInvalidID, node.Line)
	}
	if node.Tag == "!!null" {
		*r = ""
		return nil
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		id, err := normalizeNumber(node.Value)
		if err != nil {
			return err
		}
		*r = TaskRef(id)
		return nil
	}
	*r = TaskRef(node.Value)
	return nil
}

// normalizeNumber renders integral numbers without a fractional part so that
// 3, 3.0 and "3" all name the same task. Integers too large for int64 keep
// every digit; integral floats of that size are printed in full decimal form.
func normalizeNumber(s string) (string, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	if i, ok := new(big.Int).SetString(s, 10); ok {
		return i.String(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// maxExactInt is 2^63, the first float64 magnitude outside int64.
const maxExactInt = 1 << 63

// RefsToStrings converts decoded references to plain identifiers.
func RefsToStrings(refs []TaskRef) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.String()
	}
	return out
}
