// SPDX-License-Identifier: EPL-2.0

// Package audtrig is the audio engine of a sound-trigger device: it plays
// up to a few WAV or MP3 files at once from flash or card storage, mixes
// them with a synthesized tone sweep and streams 44.1kHz stereo to an
// output sink.
//
// # Packages
//
//   - engine: stream slots, decoder pool, producer loop and mixer
//   - audio: ring buffer, PCM normalizer, resampler and codec registry
//   - tone: the fixed-point sine sweep generator
//   - storage: locked flash and card media over afero filesystems
//   - formats/wav: header parsing and a 16-bit writer
//   - formats/mp3: push-style MP3 codec
//   - sink: output sinks (memory, WAV file, real-time pacing) and
//     sink/otosink for the sound card
//
// # Quick Start
//
//	router := &storage.Router{
//		Flash: storage.NewDirMedium("flash", "/var/lib/audtrig/flash"),
//		Card:  storage.NewDirMedium("card", "/media/sd"),
//	}
//	codecs := audio.NewRegistry()
//	codecs.Register("mp3", mp3.NewCodec)
//
//	e, err := engine.New(router, codecs, engine.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	speaker, err := otosink.NewSpeaker(44100, 50*time.Millisecond)
//	if err != nil {
//		return err
//	}
//	go e.Run(ctx, speaker)
//
//	_ = e.Start(0, "/flash/boot.wav")
//	_ = e.Start(e.NextAvailableSlot(), "/music/track01.mp3")
//	e.TriggerTone(800, 1600, 150, 128)
//
// # Offline Rendering
//
// Render plays one file through a private engine and returns the mixed PCM,
// which is handy for tests and for checking what the device will output:
//
//	pcm, err := audtrig.Render(router, codecs, "/flash/boot.wav", engine.DefaultOptions(), 0)
//	_ = wav.WriteWAV16(out, 44100, 2, pcm)
package audtrig
