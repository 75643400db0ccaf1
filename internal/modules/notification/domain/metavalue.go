package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type MetaKind int

const (
	MetaNull MetaKind = iota
	MetaString
	MetaNumber
	MetaBool
)

// MetaValue is a closed variant over the scalar values allowed in a
// notification's metadata bag: string, number, boolean or null. Anything
// else in the wire payload is rejected at decode time.
type MetaValue struct {
	kind MetaKind
	str  string
	num  float64
	b    bool
}

func MetaStringValue(s string) MetaValue  { return MetaValue{kind: MetaString, str: s} }
func MetaNumberValue(n float64) MetaValue { return MetaValue{kind: MetaNumber, num: n} }
func MetaBoolValue(b bool) MetaValue      { return MetaValue{kind: MetaBool, b: b} }
func MetaNullValue() MetaValue            { return MetaValue{kind: MetaNull} }

func (v MetaValue) Kind() MetaKind { return v.kind }

// String renders the value for generic display.
func (v MetaValue) String() string {
	switch v.kind {
	case MetaString:
		return v.str
	case MetaNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case MetaBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetaString:
		return json.Marshal(v.str)
	case MetaNumber:
		return json.Marshal(v.num)
	case MetaBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case nil:
		*v = MetaNullValue()
	case string:
		*v = MetaStringValue(value)
	case float64:
		*v = MetaNumberValue(value)
	case bool:
		*v = MetaBoolValue(value)
	default:
		return fmt.Errorf("metadata value must be a scalar, got %T", raw)
	}
	return nil
}
