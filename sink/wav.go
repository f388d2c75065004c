// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

const wavFlushFrames = 4096

// WAV records the output to a 16-bit stereo WAV file. Each Begin truncates
// the file and each End finalizes its header.
type WAV struct {
	fs   afero.Fs
	path string

	f     afero.File
	enc   *wav.Encoder
	buf   *goaudio.IntBuffer
	wrote bool
}

func NewWAV(fs afero.Fs, path string) *WAV {
	return &WAV{fs: fs, path: path}
}

func (w *WAV) Begin(sampleRate int) error {
	if w.f != nil {
		if err := w.End(); err != nil {
			return err
		}
	}

	f, err := w.fs.Create(w.path)
	if err != nil {
		return fmt.Errorf("sink: create %s: %w", w.path, err)
	}

	w.f = f
	w.wrote = false
	w.enc = wav.NewEncoder(f, sampleRate, 16, 2, 1)
	w.buf = &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, 0, 2*wavFlushFrames),
		SourceBitDepth: 16,
	}
	return nil
}

func (w *WAV) WriteFrame(l, r int16) error {
	if w.enc == nil {
		return ErrNotStarted
	}

	w.buf.Data = append(w.buf.Data, int(l), int(r))
	if len(w.buf.Data) >= 2*wavFlushFrames {
		return w.flush()
	}
	return nil
}

// flush writes the buffered frames. The first call always writes, so the
// encoder has emitted its header before Close patches the sizes.
func (w *WAV) flush() error {
	if len(w.buf.Data) == 0 && w.wrote {
		return nil
	}
	w.wrote = true
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("sink: write %s: %w", w.path, err)
	}
	w.buf.Data = w.buf.Data[:0]
	return nil
}

func (w *WAV) End() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil

	err := w.flush()
	if cerr := w.enc.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("sink: finalize %s: %w", w.path, cerr)
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("sink: close %s: %w", w.path, cerr)
	}
	w.enc = nil
	return err
}
