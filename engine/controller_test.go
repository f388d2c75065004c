// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ik5/audtrig/internal/audiotest"
	"github.com/ik5/audtrig/sink"
)

func TestEngine_InvalidSlot(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), nil)

	if err := f.e.Stop(-1); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Stop(-1) error = %v", err)
	}
	if _, err := f.e.Status(3); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Status(3) error = %v", err)
	}
	if err := f.e.Stop(2); err != nil {
		t.Errorf("Stop() of idle slot error = %v", err)
	}
}

func TestEngine_DecodersNotLeaked(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), nil)
	f.write(t, f.card, "/a.mp3", audiotest.LE(audiotest.Constant(2, 1000, 1)))

	if err := f.e.Start(0, "/a.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := f.e.Start(1, "/a.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := f.e.Start(2, "/a.mp3"); !errors.Is(err, ErrNoDecoder) {
		t.Fatalf("Start() with decoders exhausted error = %v, want ErrNoDecoder", err)
	}
	if st, _ := f.e.Status(2); st.Playing {
		t.Error("slot 2 playing without a decoder")
	}

	// Restarting a slot hands its decoder back first.
	for range 10 {
		if err := f.e.Start(0, "/a.mp3"); err != nil {
			t.Fatalf("restart error = %v", err)
		}
	}
	if err := f.e.Stop(1); err != nil {
		t.Fatal(err)
	}
	if err := f.e.Start(2, "/a.mp3"); err != nil {
		t.Fatalf("Start() after Stop error = %v", err)
	}

	for range 10 {
		_ = f.e.Stop(0)
		_ = f.e.Stop(2)
		_ = f.e.Start(0, "/a.mp3")
		_ = f.e.Start(2, "/a.mp3")
	}
	if got := f.e.pool.InUse(); got != 2 {
		t.Errorf("pool.InUse() = %d, want 2", got)
	}
	if len(f.created) != 2 {
		t.Errorf("%d codecs built, want 2 reused", len(f.created))
	}

	f.e.Close()
	if got := f.e.pool.InUse(); got != 0 {
		t.Errorf("pool.InUse() after Close = %d, want 0", got)
	}
}

func TestEngine_DecodeErrorEndsStream(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), func() *audiotest.Codec {
		c := audiotest.NewCodec()
		c.WriteErr = errors.New("corrupt frame")
		return c
	})
	f.write(t, f.card, "/bad.mp3", audiotest.LE(audiotest.Constant(2, 1000, 1)))

	if err := f.e.Start(0, "/bad.mp3"); err != nil {
		t.Fatal(err)
	}
	f.play(t, 0)
	if f.e.pool.InUse() != 0 {
		t.Errorf("pool.InUse() = %d, want 0", f.e.pool.InUse())
	}
}

func TestEngine_NextAvailableSlot(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), nil)
	f.write(t, f.flash, "/a.wav", audiotest.WAV(44100, 2, audiotest.Constant(2, 10, 1)))

	for want := range 3 {
		slot := f.e.NextAvailableSlot()
		if slot != want {
			t.Fatalf("NextAvailableSlot() = %d, want %d", slot, want)
		}
		if err := f.e.Start(slot, "/flash/a.wav"); err != nil {
			t.Fatal(err)
		}
	}
	if got := f.e.NextAvailableSlot(); got != 0 {
		t.Errorf("NextAvailableSlot() when full = %d, want 0", got)
	}

	_ = f.e.Stop(1)
	if got := f.e.NextAvailableSlot(); got != 1 {
		t.Errorf("NextAvailableSlot() = %d, want 1", got)
	}
}

func TestEngine_Busy(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), nil)
	f.write(t, f.card, "/a.mp3", audiotest.LE(audiotest.Constant(2, 8000, 1)))
	f.write(t, f.flash, "/a.wav", audiotest.WAV(44100, 2, audiotest.Constant(2, 10, 1)))

	if f.e.Busy() {
		t.Error("Busy() with nothing playing")
	}

	_ = f.e.Start(1, "/flash/a.wav")
	if f.e.Busy() {
		t.Error("Busy() for an empty PCM ring")
	}

	_ = f.e.Start(0, "/a.mp3")
	if !f.e.Busy() {
		t.Error("Busy() = false for an empty compressed ring")
	}
	for range 20 {
		f.e.Service()
	}
	if f.e.Busy() {
		t.Errorf("Busy() = true with %d samples buffered", f.e.streams[0].ring.AvailableToRead())
	}
}

func TestEngine_PlayAndWait(t *testing.T) {
	t.Parallel()

	o := testOptions()
	o.Clock = time.Now
	f := newFixture(t, o, nil)
	f.write(t, f.flash, "/a.wav", audiotest.WAV(44100, 2, audiotest.Constant(2, 441, 1000)))
	f.e.SetAudioEnabled(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mem := sink.NewMemory()
	runDone := make(chan error, 1)
	go func() { runDone <- f.e.Run(ctx, sink.NewPaced(mem)) }()

	if err := f.e.PlayAndWait(ctx, 0, "/flash/a.wav"); err != nil {
		t.Fatalf("PlayAndWait() error = %v", err)
	}
	if st, _ := f.e.Status(0); st.Playing {
		t.Error("slot still playing after PlayAndWait")
	}
	if f.e.AudioEnabled() {
		t.Error("audio left enabled after PlayAndWait")
	}

	cancel()
	if err := <-runDone; err != nil {
		t.Errorf("Run() error = %v", err)
	}

	loud := 0
	for _, fr := range mem.Frames() {
		if fr.L != 0 {
			loud++
		}
	}
	if loud == 0 || loud > 441 {
		t.Errorf("%d non-silent frames, want 1..441", loud)
	}
}

func TestEngine_PlayAndWaitCanceled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testOptions(), nil)
	f.write(t, f.flash, "/long.wav", audiotest.WAV(44100, 2, audiotest.Constant(2, 44100, 1)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nothing mixes, so the stream can never drain.
	if err := f.e.PlayAndWait(ctx, 0, "/flash/long.wav"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("PlayAndWait() error = %v, want DeadlineExceeded", err)
	}
	if st, _ := f.e.Status(0); st.Playing {
		t.Error("slot still playing after cancel")
	}
}

func TestEngine_RunToggleOutput(t *testing.T) {
	t.Parallel()

	o := testOptions()
	o.Clock = time.Now
	f := newFixture(t, o, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := sink.NewMemory()
	runDone := make(chan error, 1)
	go func() { runDone <- f.e.Run(ctx, sink.NewPaced(mem)) }()

	waitFor := func(what string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !cond() {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %s", what)
			}
			time.Sleep(time.Millisecond)
		}
	}

	waitFor("first frames", func() bool { return mem.Len() > 0 })

	f.e.SetAudioEnabled(false)
	waitFor("sink end", func() bool { _, ends := mem.Cycles(); return ends == 1 })

	f.e.SetAudioEnabled(true)
	waitFor("sink restart", func() bool { begins, _ := mem.Cycles(); return begins == 2 })

	cancel()
	if err := <-runDone; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if begins, ends := mem.Cycles(); begins != 2 || ends != 2 {
		t.Errorf("Cycles() = %d, %d, want 2, 2", begins, ends)
	}
	if mem.SampleRate() != 44100 {
		t.Errorf("sink rate = %d, want 44100", mem.SampleRate())
	}
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st   Status
		want string
	}{
		{Status{}, "idle,,0"},
		{Status{Path: "/x.wav", Volume: 40}, "idle,,0"},
		{Status{Playing: true, Path: "/x.wav", Volume: 40}, "playing,/x.wav,40"},
		{Status{Playing: true, Path: "", Volume: 0}, "playing,,0"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}
