package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/pkg"
)

// loadState reads persistent parameters saved by [saveState]. A missing file
// is an empty store.
func loadState(path string) (map[string]lang.Value, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]lang.Value{}, nil
		}

		return nil, pkg.ErrLoadState.Wrap(err)
	}
	defer f.Close()

	values, err := decodeValues(f)
	if err != nil {
		return nil, pkg.ErrLoadState.Wrapf("%s", path).Wrap(err)
	}

	return values, nil
}

// saveState replaces the file at path with values. The file is written next
// to its destination and renamed into place.
func saveState(path string, values map[string]lang.Value) (err error) {
	if path == "" {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return pkg.ErrSaveState.Wrap(err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = encodeValues(tmp, values); err != nil {
		_ = tmp.Close()

		return pkg.ErrSaveState.Wrapf("%s", path).Wrap(err)
	}

	if err = tmp.Close(); err != nil {
		return pkg.ErrSaveState.Wrap(err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return pkg.ErrSaveState.Wrap(err)
	}

	return nil
}
