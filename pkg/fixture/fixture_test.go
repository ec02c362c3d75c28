package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/table"
	"mocktable/pkg/table/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
tables:
  - file: 000001.sst
    entries:
      - {key: a, seq: 1, kind: put, value: v1}
      - {key: b, seq: 1, value: v2}
  - file: 000002.sst
    entries:
      - {key: a, seq: 5, kind: delete}
`

func writeFixture(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndBuildDir(t *testing.T) {
	fx, err := Load(writeFixture(t, fixtureYAML))
	require.NoError(t, err)
	require.Len(t, fx.Tables, 2)

	f := mock.NewFactory(mock.Options{})
	dir := filepath.Join(t.TempDir(), "data")
	paths, err := fx.BuildDir(f, dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, 2, f.Size())

	file, err := os.Open(paths[0])
	require.NoError(t, err)
	defer file.Close()

	r, err := f.NewTableReader(file)
	require.NoError(t, err)

	gc := table.NewGetContext(nil, []byte("b"))
	require.NoError(t, r.Get(ikey.LookupKey([]byte("b"), ikey.MaxSequenceNumber), gc.SaveValue))
	assert.Equal(t, table.GetFound, gc.State())
	assert.Equal(t, []byte("v2"), gc.Value())

	second, ok := f.Lookup(2)
	require.True(t, ok)
	require.Equal(t, 1, second.Len())
	parsed, err := ikey.Parse(second.Key(0))
	require.NoError(t, err)
	assert.Equal(t, ikey.KindDelete, parsed.Kind)
}

func TestBuildDir_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown kind", body: "tables:\n  - file: t.sst\n    entries:\n      - {key: a, seq: 1, kind: bogus}\n"},
		{name: "nested path", body: "tables:\n  - file: ../t.sst\n"},
		{name: "missing name", body: "tables:\n  - entries: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, err := Load(writeFixture(t, tt.body))
			require.NoError(t, err)

			f := mock.NewFactory(mock.Options{})
			_, err = fx.BuildDir(f, t.TempDir())
			require.ErrorIs(t, err, dberrors.ErrInvalidArgument)
			assert.Equal(t, 0, f.Size())
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
