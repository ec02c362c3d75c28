package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mocktable/pkg/fixture"
	"mocktable/pkg/table/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	fx := fixture.Fixture{Tables: []fixture.Table{
		{
			File: "000001.sst",
			Entries: []fixture.Entry{
				{Key: "a", Seq: 1, Kind: "put", Value: "v1"},
				{Key: "b", Seq: 1, Kind: "put", Value: "v2"},
			},
		},
		{
			File: "000002.sst",
			Entries: []fixture.Entry{
				{Key: "a", Seq: 7, Kind: "delete"},
				{Key: "c", Seq: 3, Kind: "merge", Value: "+1"},
			},
		},
	}}

	dir := t.TempDir()
	f := mock.NewFactory(mock.Options{})
	_, err := fx.BuildDir(f, dir)
	require.NoError(t, err)

	return NewServer(f, dir, "")
}

func serve(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.createRouter().ServeHTTP(rr, req)

	return rr
}

func decodeResp[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)

	rr := serve(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, StatusOK, decodeResp[Response](t, rr).Status)

	rr = serve(t, s, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestTablesHandler(t *testing.T) {
	s := newTestServer(t)

	rr := serve(t, s, http.MethodGet, "/tables")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResp[TablesResponse](t, rr)
	assert.Equal(t, []TableSummary{{ID: 1, Entries: 2}, {ID: 2, Entries: 2}}, resp.Tables)
}

func TestTableHandler(t *testing.T) {
	s := newTestServer(t)

	rr := serve(t, s, http.MethodGet, "/tables/1")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResp[TableResponse](t, rr)
	assert.Equal(t, uint32(1), resp.ID)
	assert.Equal(t, []EntryView{
		{Key: `"a"@1#PUT`, Value: "v1", Valid: true},
		{Key: `"b"@1#PUT`, Value: "v2", Valid: true},
	}, resp.Entries)

	rr = serve(t, s, http.MethodGet, "/tables/42")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, s, http.MethodGet, "/tables/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFileGetHandler(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		code   int
		value  string
		state  string
	}{
		{name: "found", target: "/files/000001.sst/get?key=a", code: http.StatusOK, value: "v1", state: "found"},
		{name: "missing", target: "/files/000001.sst/get?key=z", code: http.StatusNotFound, state: "not found"},
		{name: "deleted", target: "/files/000002.sst/get?key=a", code: http.StatusNotFound, state: "deleted"},
		{name: "hidden by snapshot", target: "/files/000002.sst/get?key=a&seq=6", code: http.StatusNotFound, state: "not found"},
		{name: "merge", target: "/files/000002.sst/get?key=c", code: http.StatusOK, value: "+1", state: "merge"},
		{name: "no file", target: "/files/000009.sst/get?key=a", code: http.StatusNotFound},
		{name: "missing key", target: "/files/000001.sst/get", code: http.StatusBadRequest},
		{name: "bad seq", target: "/files/000001.sst/get?key=a&seq=x", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, s, http.MethodGet, tt.target)
			require.Equal(t, tt.code, rr.Code, rr.Body.String())

			resp := decodeResp[Response](t, rr)
			assert.Equal(t, tt.value, resp.Value)
			if tt.state != "" {
				assert.Equal(t, tt.state, resp.State)
			}
		})
	}
}

func TestFileGetHandler_UnknownTable(t *testing.T) {
	s := newTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(s.dataDir, "stray.sst"), []byte{9, 0, 0, 0}, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(s.dataDir, "empty.sst"), nil, 0o600))

	rr := serve(t, s, http.MethodGet, "/files/stray.sst/get?key=a")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, s, http.MethodGet, "/files/empty.sst/get?key=a")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
