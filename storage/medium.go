// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/afero"
)

var ErrNotRegular = errors.New("not a regular file")

// Medium is one storage device. Its filesystem is not safe for concurrent
// use by the device driver underneath, so every access happens with the
// medium locked.
type Medium struct {
	sync.Mutex

	name string
	fs   afero.Fs
}

func NewMedium(name string, fs afero.Fs) *Medium {
	return &Medium{name: name, fs: fs}
}

// NewDirMedium exposes dir of the host filesystem read-only.
func NewDirMedium(name, dir string) *Medium {
	return NewMedium(name, afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)))
}

func (m *Medium) Name() string { return m.name }
func (m *Medium) Fs() afero.Fs { return m.fs }

// Open opens path for streaming. The caller holds the lock.
func (m *Medium) Open(path string) (*Handle, error) {
	f, err := m.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", m.name, path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: stat %s: %w", m.name, path, err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %s: %w", m.name, path, ErrNotRegular)
	}

	return &Handle{f: f, size: fi.Size()}, nil
}

// Handle is an open file on a Medium. Every method must be called with the
// medium locked.
type Handle struct {
	f    afero.File
	size int64
	pos  int64
}

func (h *Handle) Read(p []byte) (int, error) {
	n, err := h.f.Read(p)
	h.pos += int64(n)
	return n, err
}

func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	pos, err := h.f.Seek(offset, whence)
	if err != nil {
		return h.pos, err
	}
	h.pos = pos
	return pos, nil
}

// Available reports whether unread bytes remain.
func (h *Handle) Available() bool { return h.pos < h.size }

func (h *Handle) Size() int64     { return h.size }
func (h *Handle) Position() int64 { return h.pos }

func (h *Handle) Close() error { return h.f.Close() }

var _ io.ReadSeekCloser = (*Handle)(nil)
