// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/audtrig/formats/wav"
	"github.com/spf13/afero"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	if err := m.WriteFrame(1, 1); !errors.Is(err, ErrNotStarted) {
		t.Errorf("WriteFrame() before Begin error = %v, want ErrNotStarted", err)
	}

	_ = m.Begin(44100)
	_ = m.WriteFrame(1, -1)
	_ = m.WriteFrame(2, -2)
	_ = m.End()

	got := m.Frames()
	if len(got) != 2 || got[1] != (Frame{2, -2}) {
		t.Errorf("Frames() = %v, want [{1 -1} {2 -2}]", got)
	}
	if m.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", m.SampleRate())
	}
	if b, e := m.Cycles(); b != 1 || e != 1 {
		t.Errorf("Cycles() = %d, %d, want 1, 1", b, e)
	}
}

func TestWAV_RecordsFrames(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWAV(fs, "/out.wav")

	if err := w.Begin(44100); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	// Enough to cross a flush boundary.
	n := wavFlushFrames + 100
	for i := range n {
		if err := w.WriteFrame(int16(i), int16(-i)); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}
	if err := w.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	f, err := fs.Open("/out.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h, err := wav.ParseHeader(f)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.Channels != 2 || h.SampleRate != 44100 || h.BitDepth != 16 {
		t.Errorf("header = %v, want 44.1kHz 16-bit stereo", h)
	}
	if h.DataSize != int64(4*n) {
		t.Errorf("DataSize = %d, want %d", h.DataSize, 4*n)
	}
}

func TestWAV_EmptyRecording(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWAV(fs, "/empty.wav")

	_ = w.Begin(22050)
	if err := w.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	f, _ := fs.Open("/empty.wav")
	defer f.Close()

	h, err := wav.ParseHeader(f)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.SampleRate != 22050 || h.DataSize != 0 {
		t.Errorf("header = %v size %d, want 22050 Hz and no data", h, h.DataSize)
	}
}

func TestWAV_NotStarted(t *testing.T) {
	t.Parallel()

	w := NewWAV(afero.NewMemMapFs(), "/x.wav")
	if err := w.WriteFrame(0, 0); !errors.Is(err, ErrNotStarted) {
		t.Errorf("WriteFrame() error = %v, want ErrNotStarted", err)
	}
	if err := w.End(); err != nil {
		t.Errorf("End() without Begin error = %v, want nil", err)
	}
}

func TestWAV_CreateFails(t *testing.T) {
	t.Parallel()

	w := NewWAV(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/x.wav")
	if err := w.Begin(44100); err == nil {
		t.Error("Begin() on read-only fs error = nil")
	}
}

type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = c.now.Add(d)
}

func TestPaced_SleepsToRealTime(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(0, 0)}
	mem := NewMemory()
	p := NewPaced(mem)
	p.now = clk.Now
	p.sleep = clk.Sleep

	_ = p.Begin(44100)
	for range 44100 {
		_ = p.WriteFrame(0, 0)
	}

	// 44100 is not a multiple of the batch; the last check happens at
	// 44032 frames.
	want := time.Duration(44032) * time.Second / 44100
	if clk.slept != want {
		t.Errorf("slept %v, want %v", clk.slept, want)
	}
	if mem.Len() != 44100 {
		t.Errorf("forwarded %d frames, want 44100", mem.Len())
	}
}
