// Package fixture builds tables described in YAML through any table.Factory.
//
//	tables:
//	  - file: 000001.sst
//	    entries:
//	      - {key: a, seq: 1, kind: put, value: v1}
//	      - {key: b, seq: 2, kind: delete}
package fixture

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/table"
	"mocktable/pkg/types"

	"github.com/goccy/go-yaml"
)

type Fixture struct {
	Tables []Table `yaml:"tables"`
}

type Table struct {
	File    string  `yaml:"file"`
	Entries []Entry `yaml:"entries"`
}

type Entry struct {
	Key   string `yaml:"key"`
	Seq   uint64 `yaml:"seq"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

func Load(path string) (Fixture, error) {
	var fx Fixture

	data, err := os.ReadFile(path)
	if err != nil {
		return fx, fmt.Errorf("failed to read fixture: %w", err)
	}

	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fx, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	return fx, nil
}

// ParseKind maps a fixture kind name to an internal key kind. Empty means put.
func ParseKind(name string) (ikey.Kind, error) {
	switch strings.ToLower(name) {
	case "", "put", "set":
		return ikey.KindPut, nil
	case "delete", "del":
		return ikey.KindDelete, nil
	case "merge":
		return ikey.KindMerge, nil
	default:
		return 0, fmt.Errorf("unknown kind %q: %w", name, dberrors.ErrInvalidArgument)
	}
}

// Build writes the table header into w, adds the entries and seals the table.
func (t Table) Build(f table.Factory, w io.Writer) error {
	b, err := f.NewTableBuilder(w)
	if err != nil {
		return err
	}

	for _, e := range t.Entries {
		kind, err := ParseKind(e.Kind)
		if err != nil {
			_ = b.Abandon()
			return fmt.Errorf("%s: key %q: %w", t.File, e.Key, err)
		}

		key := ikey.Encode([]byte(e.Key), types.SequenceNumber(e.Seq), kind)
		if err := b.Add(key, []byte(e.Value)); err != nil {
			_ = b.Abandon()
			return err
		}
	}

	return b.Finish()
}

// BuildDir creates one file per table under dir and returns their paths.
func (fx Fixture) BuildDir(f table.Factory, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	paths := make([]string, 0, len(fx.Tables))
	for _, t := range fx.Tables {
		if t.File == "" || filepath.Base(t.File) != t.File {
			return paths, fmt.Errorf("table file name %q: %w", t.File, dberrors.ErrInvalidArgument)
		}

		path := filepath.Join(dir, t.File)
		file, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("failed to create table file: %w", err)
		}

		err = t.Build(f, file)
		if cerr := file.Close(); cerr != nil {
			slog.Warn("failed to close table file", "path", path, "error", cerr)
		}
		if err != nil {
			return paths, fmt.Errorf("failed to build %s: %w", path, err)
		}

		slog.Info("table built", "path", path, "entries", len(t.Entries))
		paths = append(paths, path)
	}

	return paths, nil
}
