package server

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/codec"
	"github.com/born-ml/tensornet/internal/tensor"
)

// stubBackend overrides selected operations of the gonum backend.
type stubBackend struct {
	*gonum.Backend
	invErr error
}

func (s stubBackend) Inv(m *tensor.RawTensor) (*tensor.RawTensor, error) {
	if s.invErr != nil {
		return nil, s.invErr
	}
	return s.Backend.Inv(m)
}

func newTestEcho(t *testing.T, backend tensor.Backend) *echo.Echo {
	t.Helper()
	if backend == nil {
		b, err := gonum.New()
		require.NoError(t, err)
		backend = b
	}
	e := echo.New()
	New(backend, nil).Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.ID, "op_"), resp.ID)
	return resp
}

type errorResponse struct {
	ID    string    `json:"id"`
	Error ErrorBody `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, status int) ErrorBody {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestBackendInfo(t *testing.T) {
	e := newTestEcho(t, nil)
	rec := doJSON(t, e, http.MethodGet, "/v1/backend", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name string     `json:"name"`
		Info gonum.Info `json:"info"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "gonum", body.Name)
	assert.Equal(t, "gonum", body.Info.Name)
	assert.NotEmpty(t, body.Info.Arch)
}

func TestSVDEndpoint(t *testing.T) {
	e := newTestEcho(t, nil)
	rec := doJSON(t, e, http.MethodPost, "/v1/ops/svd",
		`{"tensor":{"dtype":"float64","shape":[3,3],"data":[3,0,0,0,2,0,0,0,1]},"split_axis":1,"max_singular_values":2}`)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "svd", resp.Op)
	require.Contains(t, resp.Tensors, "s")
	assert.Equal(t, []int{2}, resp.Tensors["s"].Shape)
	assert.InDeltaSlice(t, []float64{3, 2}, resp.Tensors["s"].Data, 1e-12)
	assert.InDeltaSlice(t, []float64{1}, resp.Tensors["s_rest"].Data, 1e-12)
	assert.Equal(t, []int{3, 2}, resp.Tensors["u"].Shape)
	assert.Equal(t, []int{2, 3}, resp.Tensors["vh"].Shape)
}

func TestQRAndRQEndpoints(t *testing.T) {
	e := newTestEcho(t, nil)
	body := `{"tensor":{"shape":[2,2],"data":[1,2,3,4]},"split_axis":1}`

	qr := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/qr", body))
	assert.Contains(t, qr.Tensors, "q")
	assert.Contains(t, qr.Tensors, "r")

	rq := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/rq", body))
	assert.Equal(t, "rq", rq.Op)
	assert.Equal(t, []int{2, 2}, rq.Tensors["r"].Shape)
}

func TestMatrixEndpoints(t *testing.T) {
	e := newTestEcho(t, nil)
	body := `{"tensor":{"shape":[2,2],"data":[4,7,2,6]}}`

	inv := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv", body))
	assert.InDeltaSlice(t, []float64{0.6, -0.7, -0.2, 0.4}, inv.Tensors["result"].Data, 1e-12)

	trace := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/trace", body))
	assert.Equal(t, codec.Values{10}, trace.Tensors["result"].Data)

	norm := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/norm", `{"tensor":{"shape":[2],"data":[3,4]}}`))
	assert.InDelta(t, 5, norm.Tensors["result"].Data[0], 1e-12)

	expm := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/expm", `{"tensor":{"shape":[1,1],"data":[0]}}`))
	assert.InDeltaSlice(t, []float64{1}, expm.Tensors["result"].Data, 1e-12)

	eigh := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/eigh", `{"tensor":{"shape":[2,2],"data":[2,1,1,2]}}`))
	assert.InDeltaSlice(t, []float64{1, 3}, eigh.Tensors["values"].Data, 1e-12)
}

func TestComplexRoundTrip(t *testing.T) {
	e := newTestEcho(t, nil)
	resp := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv",
		`{"tensor":{"dtype":"complex128","shape":[1,1],"data":[0],"imag":[2]}}`))

	result := resp.Tensors["result"]
	assert.Equal(t, "complex128", result.DType)
	assert.InDeltaSlice(t, []float64{0}, result.Data, 1e-12)
	assert.InDeltaSlice(t, []float64{-0.5}, result.Imag, 1e-12)
}

func TestContractionEndpoints(t *testing.T) {
	e := newTestEcho(t, nil)

	td := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/tensordot",
		`{"a":{"shape":[2,3],"data":[1,2,3,4,5,6]},"b":{"shape":[3,2],"data":[1,2,3,4,5,6]},"axes":[[1],[0]]}`))
	assert.Equal(t, codec.Values{22, 28, 49, 64}, td.Tensors["result"].Data)

	es := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/ops/einsum",
		`{"expression":"ij,jk->ik","tensors":[{"shape":[2,3],"data":[1,2,3,4,5,6]},{"shape":[3,2],"data":[1,2,3,4,5,6]}]}`))
	assert.Equal(t, td.Tensors["result"].Data, es.Tensors["result"].Data)
}

func TestNonFiniteResults(t *testing.T) {
	e := newTestEcho(t, nil)

	rec := doJSON(t, e, http.MethodPost, "/v1/ops/tensordot",
		`{"a":{"shape":[2],"data":[1e308,"NaN"]},"b":{"shape":[1],"data":[10]},"axes":[[],[]]}`)
	assert.Contains(t, rec.Body.String(), `"Infinity"`)
	resp := decodeResponse(t, rec)
	out := resp.Tensors["result"]
	assert.Equal(t, []int{2, 1}, out.Shape)
	require.Len(t, out.Data, 2)
	assert.True(t, math.IsInf(out.Data[0], 1))
	assert.True(t, math.IsNaN(out.Data[1]))
}

func TestRandomEndpoints(t *testing.T) {
	e := newTestEcho(t, nil)
	body := `{"shape":[2,3],"dtype":"complex128","seed":5}`

	first := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/randn", body))
	second := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/randn", body))
	assert.Equal(t, []int{2, 3}, first.Tensors["result"].Shape)
	assert.Len(t, first.Tensors["result"].Imag, 6)
	assert.Equal(t, first.Tensors["result"], second.Tensors["result"])

	uniform := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/uniform",
		`{"shape":[50],"low":5,"high":6}`))
	for _, v := range uniform.Tensors["result"].Data {
		assert.GreaterOrEqual(t, v, 5.0)
		assert.LessOrEqual(t, v, 6.0)
	}
}

func TestRandomEndpoints_Defaults(t *testing.T) {
	b, err := gonum.New()
	require.NoError(t, err)
	e := echo.New()
	New(b, nil, WithDefaultDType(tensor.Float32), WithDefaultSeed(9)).Register(e)

	body := `{"shape":[4]}`
	first := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/randn", body))
	second := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/randn", body))
	assert.Equal(t, "float32", first.Tensors["result"].DType)
	assert.Equal(t, first.Tensors["result"], second.Tensors["result"])

	// Request fields win over the defaults.
	explicit := decodeResponse(t, doJSON(t, e, http.MethodPost, "/v1/random/randn",
		`{"shape":[4],"dtype":"float64","seed":10}`))
	assert.Equal(t, "float64", explicit.Tensors["result"].DType)
	assert.NotEqual(t, first.Tensors["result"].Data, explicit.Tensors["result"].Data)
}

func TestErrorMapping(t *testing.T) {
	e := newTestEcho(t, nil)

	// Malformed JSON.
	decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv", `{"tensor":`), http.StatusBadRequest)

	// Invalid tensor document.
	body := decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv",
		`{"tensor":{"shape":[2,2],"data":[1]}}`), http.StatusBadRequest)
	assert.Equal(t, "invalid_request_error", body.Type)

	// Backend argument errors.
	body = decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv",
		`{"tensor":{"shape":[2,3],"data":[1,2,3,4,5,6]}}`), http.StatusBadRequest)
	assert.Contains(t, body.Message, "only N*N matrices are supported")

	// Unsupported dtype.
	decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/svd",
		`{"tensor":{"dtype":"complex128","shape":[1,1],"data":[1]},"split_axis":1}`), http.StatusBadRequest)

	// Singular matrices.
	decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv",
		`{"tensor":{"shape":[2,2],"data":[1,2,2,4]}}`), http.StatusBadRequest)

	// Reversed uniform boundaries.
	decodeError(t, doJSON(t, e, http.MethodPost, "/v1/random/uniform",
		`{"shape":[2],"low":1,"high":0}`), http.StatusBadRequest)

	// Missing einsum expression.
	decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/einsum", `{"tensors":[]}`), http.StatusBadRequest)
}

func TestErrorMapping_NotImplementedAndInternal(t *testing.T) {
	b, err := gonum.New()
	require.NoError(t, err)
	body := `{"tensor":{"shape":[1,1],"data":[1]}}`

	e := newTestEcho(t, stubBackend{Backend: b, invErr: &tensor.NotImplementedError{Backend: "stub", Op: "inv"}})
	resp := decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv", body), http.StatusNotImplemented)
	assert.Equal(t, "not_implemented_error", resp.Type)
	assert.Equal(t, "backend 'stub' has not implemented inv", resp.Message)

	e = newTestEcho(t, stubBackend{Backend: b, invErr: errors.New("kernel crashed")})
	resp = decodeError(t, doJSON(t, e, http.MethodPost, "/v1/ops/inv", body), http.StatusInternalServerError)
	assert.Equal(t, "server_error", resp.Type)
}
