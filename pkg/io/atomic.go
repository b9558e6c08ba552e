package io

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/errors"
)

// FilePerm is the mode of written artifacts.
const FilePerm os.FileMode = 0o644

// WriteFileAtomic writes data to path through a temporary file in the same
// directory. On failure the target is left untouched and the temporary
// file is removed.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := afero.TempFile(fsys, dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file for %s", path)
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(name)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err = fsys.Chmod(name, FilePerm); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err = fsys.Rename(name, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename into %s", path)
	}
	return nil
}
