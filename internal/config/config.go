// SPDX-License-Identifier: EPL-2.0

// Package config loads the daemon settings from defaults, an optional YAML
// file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/engine"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores: AUDTRIG_MEDIA_CARD sets media.card.
const EnvPrefix = "AUDTRIG"

// Config is the resolved daemon configuration.
type Config struct {
	LogLevel string
	LogFile  string

	SampleRate        int
	Streams           int
	Decoders          int
	RingSize          int
	ChunkSize         int
	PCMMargin         int
	CompressedMargin  int
	FadeIn            time.Duration
	MasterAttenuation int
	RatePolicy        string
	ServiceInterval   time.Duration

	FlashDir string
	CardDir  string

	SinkKind string
	SinkPath string

	// Paths are the positional arguments: files to play in turn.
	Paths []string
}

func setViperDefaults(v *viper.Viper) {
	d := engine.DefaultOptions()

	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("samplerate", d.SampleRate)
	v.SetDefault("streams", d.Streams)
	v.SetDefault("decoders", d.Decoders)
	v.SetDefault("ringsize", d.RingSize)
	v.SetDefault("chunksize", d.ChunkSize)
	v.SetDefault("pcmmargin", d.PCMMargin)
	v.SetDefault("compressedmargin", d.CompressedMargin)
	v.SetDefault("fadeinms", d.FadeIn.Milliseconds())
	v.SetDefault("masterattenuation", d.MasterAttenuation)
	v.SetDefault("ratepolicy", d.RatePolicy.String())
	v.SetDefault("serviceinterval", d.ServiceInterval)
	v.SetDefault("media.flash", "./flash")
	v.SetDefault("media.card", "./card")
	v.SetDefault("sink.kind", "speaker")
	v.SetDefault("sink.path", "out.wav")
}

func newFlagSet(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)

	f.String("config", "", "YAML config file")
	f.String("envfile", ".env", "dotenv file loaded into the environment, if present")

	f.String("loglevel", "info", "none, error, warn, info or debug")
	f.String("logfile", "", "write JSON logs to this file instead of stdout")
	f.Int("streams", 0, "number of stream slots")
	f.Int("decoders", 0, "number of concurrent compressed decoders")
	f.String("ratepolicy", "", "resample, passthrough or reject")
	f.String("media.flash", "", "directory served as the flash medium")
	f.String("media.card", "", "directory served as the card medium")
	f.String("sink.kind", "", "speaker or wav")
	f.String("sink.path", "", "output file of the wav sink")

	return f
}

// Load resolves the configuration for the command line args (without the
// program name). Flags beat the environment, which beats the config file,
// which beats the defaults.
func Load(name string, args []string) (*Config, error) {
	f := newFlagSet(name)
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := f.GetString("envfile")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setViperDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file, _ := f.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	// Only flags given on the command line override; unset ones fall through.
	var bindErr error
	f.Visit(func(fl *pflag.Flag) {
		if fl.Name == "config" || fl.Name == "envfile" {
			return
		}
		if err := v.BindPFlag(fl.Name, fl); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	c, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	c.Paths = f.Args()
	return c, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		LogLevel:          strings.ToLower(v.GetString("loglevel")),
		LogFile:           v.GetString("logfile"),
		SampleRate:        v.GetInt("samplerate"),
		Streams:           v.GetInt("streams"),
		Decoders:          v.GetInt("decoders"),
		RingSize:          v.GetInt("ringsize"),
		ChunkSize:         v.GetInt("chunksize"),
		PCMMargin:         v.GetInt("pcmmargin"),
		CompressedMargin:  v.GetInt("compressedmargin"),
		FadeIn:            time.Duration(v.GetInt64("fadeinms")) * time.Millisecond,
		MasterAttenuation: v.GetInt("masterattenuation"),
		RatePolicy:        v.GetString("ratepolicy"),
		ServiceInterval:   v.GetDuration("serviceinterval"),
		FlashDir:          v.GetString("media.flash"),
		CardDir:           v.GetString("media.card"),
		SinkKind:          strings.ToLower(v.GetString("sink.kind")),
		SinkPath:          v.GetString("sink.path"),
	}

	switch c.SinkKind {
	case "speaker", "wav":
	default:
		return nil, fmt.Errorf("unknown sink kind %q", c.SinkKind)
	}
	if _, err := audio.ParseRatePolicy(c.RatePolicy); err != nil {
		return nil, err
	}

	return c, nil
}

// EngineOptions maps the configuration onto engine options.
func (c *Config) EngineOptions() (engine.Options, error) {
	policy, err := audio.ParseRatePolicy(c.RatePolicy)
	if err != nil {
		return engine.Options{}, err
	}

	o := engine.DefaultOptions()
	o.SampleRate = c.SampleRate
	o.Streams = c.Streams
	o.Decoders = c.Decoders
	o.RingSize = c.RingSize
	o.ChunkSize = c.ChunkSize
	o.PCMMargin = c.PCMMargin
	o.CompressedMargin = c.CompressedMargin
	o.FadeIn = c.FadeIn
	o.MasterAttenuation = c.MasterAttenuation
	o.RatePolicy = policy
	o.ServiceInterval = c.ServiceInterval
	return o, nil
}
