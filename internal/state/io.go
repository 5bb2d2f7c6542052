package state

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

type FullReader interface {
	Normalize(key string) string
	// nil,nil = not found
	ReadAll(key string) ([]byte, error)
}

// OsFullReader resolves relative paths against base, see ReadConfig.
type OsFullReader struct {
	base string
	fs   afero.Fs
}

func NewOsFullReader() *OsFullReader { return &OsFullReader{fs: afero.NewOsFs()} }

func (self *OsFullReader) SetBase(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	self.base = abs
}

func (self *OsFullReader) Normalize(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(self.base, path))
}

func (self *OsFullReader) ReadAll(path string) ([]byte, error) { return readAll(self.fs, path) }

// MockFullReader serves named sources from memory.
type MockFullReader struct {
	fs afero.Fs
}

func NewMockFullReader(sources map[string]string) *MockFullReader {
	fs := afero.NewMemMapFs()
	for name, s := range sources {
		if err := afero.WriteFile(fs, filepath.Clean(name), []byte(s), 0644); err != nil {
			panic("code error MockFullReader name=" + name + " err=" + err.Error())
		}
	}
	return &MockFullReader{fs: fs}
}

func (self *MockFullReader) Normalize(name string) string {
	return filepath.Clean(name)
}

func (self *MockFullReader) ReadAll(name string) ([]byte, error) { return readAll(self.fs, name) }

func readAll(fs afero.Fs, path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Trace(err)
	}
	return b, nil
}
