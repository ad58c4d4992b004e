// Package codec reads and writes tensors as JSON documents:
//
//	{"dtype": "complex128", "shape": [2], "data": [1, 0], "imag": [0, 1]}
//
// data holds the real parts (booleans as 0/1) in row-major order; imag is
// present only for complex dtypes. Non-finite entries are written as the
// strings "NaN", "Infinity" and "-Infinity".
package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/born-ml/tensornet/internal/tensor"
)

// Document is the JSON form of a tensor.
type Document struct {
	DType string `json:"dtype"`
	Shape []int  `json:"shape"`
	Data  Values `json:"data"`
	Imag  Values `json:"imag,omitempty"`
}

// Values is a JSON number array that also carries NaN and the infinities.
type Values []float64

const (
	nanText    = "NaN"
	posInfText = "Infinity"
	negInfText = "-Infinity"
)

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+8*len(v))
	buf = append(buf, '[')
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		switch {
		case math.IsNaN(x):
			buf = strconv.AppendQuote(buf, nanText)
		case math.IsInf(x, 1):
			buf = strconv.AppendQuote(buf, posInfText)
		case math.IsInf(x, -1):
			buf = strconv.AppendQuote(buf, negInfText)
		default:
			buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		}
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			if err := json.Unmarshal(item, &out[i]); err != nil {
				return fmt.Errorf("value %d: %w", i, err)
			}
			continue
		}
		var text string
		if err := json.Unmarshal(item, &text); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		switch text {
		case nanText:
			out[i] = math.NaN()
		case posInfText:
			out[i] = math.Inf(1)
		case negInfText:
			out[i] = math.Inf(-1)
		default:
			return fmt.Errorf("value %d: %q is not a number", i, text)
		}
	}
	*v = out
	return nil
}

// FromTensor converts t into its document form.
func FromTensor(t *tensor.RawTensor) Document {
	doc := Document{
		DType: t.DType().String(),
		Shape: append([]int{}, t.Shape()...),
	}
	if t.DType().IsComplex() {
		vals := t.Complex128s()
		doc.Data = make([]float64, len(vals))
		doc.Imag = make([]float64, len(vals))
		for i, v := range vals {
			doc.Data[i] = real(v)
			doc.Imag[i] = imag(v)
		}
		return doc
	}
	// Every non-complex dtype is readable as float64.
	doc.Data, _ = t.Float64s()
	return doc
}

// Tensor decodes the document. An empty dtype means float64.
func (d Document) Tensor() (*tensor.RawTensor, error) {
	dtype, err := tensor.ParseDataType(d.DType)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	dtype = dtype.OrDefault()
	shape := tensor.Shape(d.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	if len(d.Data) != shape.NumElements() {
		return nil, fmt.Errorf("codec: shape %v requires %d values, got %d", shape, shape.NumElements(), len(d.Data))
	}

	if !dtype.IsComplex() {
		if len(d.Imag) != 0 {
			return nil, fmt.Errorf("codec: imag given for real dtype %s", dtype)
		}
		if dtype == tensor.Int32 || dtype == tensor.Int64 {
			for i, v := range d.Data {
				if math.IsInf(v, 0) || v != math.Trunc(v) {
					return nil, fmt.Errorf("codec: value %v at %d is not an integer", v, i)
				}
			}
		}
		return tensor.FromFloat64s(shape, dtype, d.Data)
	}

	if len(d.Imag) != 0 && len(d.Imag) != len(d.Data) {
		return nil, fmt.Errorf("codec: %d imaginary parts for %d values", len(d.Imag), len(d.Data))
	}
	vals := make([]complex128, len(d.Data))
	for i, re := range d.Data {
		im := 0.0
		if len(d.Imag) != 0 {
			im = d.Imag[i]
		}
		vals[i] = complex(re, im)
	}
	return tensor.FromComplex128s(shape, dtype, vals)
}

// Marshal encodes t as JSON.
func Marshal(t *tensor.RawTensor) ([]byte, error) {
	return json.Marshal(FromTensor(t))
}

// Unmarshal decodes a JSON tensor document.
func Unmarshal(data []byte) (*tensor.RawTensor, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return doc.Tensor()
}

// Decode reads a JSON value of type T from r.
func Decode[T any](r io.Reader) (T, error) {
	var out T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Write encodes v as indented JSON to w.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
