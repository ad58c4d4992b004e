package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensornet/internal/tensor"
)

func TestMarshal_Real(t *testing.T) {
	x, err := tensor.FromFloat64s(tensor.Shape{2}, tensor.Float32, []float64{1.5, -2})
	require.NoError(t, err)

	data, err := Marshal(x)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dtype":"float32","shape":[2],"data":[1.5,-2]}`, string(data))

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, back.DType())
	assert.Equal(t, x.AsFloat32(), back.AsFloat32())
}

func TestMarshal_Complex(t *testing.T) {
	x, err := tensor.FromComplex128s(tensor.Shape{2}, tensor.Complex128, []complex128{1, 1i})
	require.NoError(t, err)

	data, err := Marshal(x)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dtype":"complex128","shape":[2],"data":[1,0],"imag":[0,1]}`, string(data))

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, x.Complex128s(), back.Complex128s())
}

func TestMarshal_NonFinite(t *testing.T) {
	x, err := tensor.FromFloat64s(tensor.Shape{4}, tensor.Float64, []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2})
	require.NoError(t, err)

	data, err := Marshal(x)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dtype":"float64","shape":[4],"data":["NaN","Infinity","-Infinity",2]}`, string(data))

	back, err := Unmarshal(data)
	require.NoError(t, err)
	vals := back.AsFloat64()
	assert.True(t, math.IsNaN(vals[0]))
	assert.True(t, math.IsInf(vals[1], 1))
	assert.True(t, math.IsInf(vals[2], -1))
	assert.Equal(t, 2.0, vals[3])

	_, err = Unmarshal([]byte(`{"shape":[1],"data":["big"]}`))
	assert.Error(t, err)
}

func TestDocument_Tensor(t *testing.T) {
	// Missing dtype defaults to float64.
	x, err := Document{Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}}.Tensor()
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, x.DType())

	// Scalars have an empty shape.
	s, err := Document{DType: "int64", Data: []float64{7}}.Tensor()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, s.AsInt64())

	// Complex without imag has zero imaginary parts.
	c, err := Document{DType: "complex64", Shape: []int{1}, Data: []float64{3}}.Tensor()
	require.NoError(t, err)
	assert.Equal(t, []complex128{3}, c.Complex128s())

	b, err := Document{DType: "bool", Shape: []int{2}, Data: []float64{0, 1}}.Tensor()
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, b.AsBool())
}

func TestDocument_TensorErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"unknown dtype", Document{DType: "float16", Shape: []int{1}, Data: []float64{1}}},
		{"negative dim", Document{Shape: []int{-1}, Data: []float64{}}},
		{"element count overflow", Document{Shape: []int{math.MaxInt / 2, 3}, Data: []float64{}}},
		{"length mismatch", Document{Shape: []int{3}, Data: []float64{1, 2}}},
		{"imag on real", Document{Shape: []int{1}, Data: []float64{1}, Imag: []float64{1}}},
		{"imag length", Document{DType: "complex128", Shape: []int{2}, Data: []float64{1, 2}, Imag: []float64{1}}},
		{"fractional int", Document{DType: "int32", Shape: []int{1}, Data: []float64{1.5}}},
		{"infinite int", Document{DType: "int64", Shape: []int{1}, Data: []float64{math.Inf(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Tensor()
			assert.Error(t, err)
		})
	}
}

func TestDecode(t *testing.T) {
	type request struct {
		Tensor Document `json:"tensor"`
		Axis   int      `json:"axis"`
	}
	req, err := Decode[request](strings.NewReader(`{"tensor":{"shape":[1],"data":[2]},"axis":-1}`))
	require.NoError(t, err)
	assert.Equal(t, -1, req.Axis)
	assert.Equal(t, Values{2}, req.Tensor.Data)

	_, err = Decode[request](strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
