// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/noisemix"
	"github.com/ik5/noisemix/device"
	"github.com/ik5/noisemix/internal/config"
	"github.com/ik5/noisemix/internal/logging"
	"github.com/ik5/noisemix/sounds"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	envFiles []string
	dirs     []string
	rate     int
	channels int
	fade     string
	backend  string
	logLevel string
	logFile  string
	noBundle bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "noisemix",
		Short:         "Mix looping ambient sounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringSliceVar(&a.envFiles, "env", nil, ".env files to load (default .env)")
	f.StringSliceVarP(&a.dirs, "sounds", "s", nil, "sound directories, later ones override earlier ones")
	f.BoolVar(&a.noBundle, "no-bundled", false, "do not include the bundled sounds")
	f.IntVar(&a.rate, "rate", 0, "output sample rate")
	f.IntVar(&a.channels, "channels", 0, "output channels")
	f.StringVar(&a.fade, "fade", "", "fade length, e.g. 300ms")
	f.StringVar(&a.backend, "backend", "", "output backend: oto, beep or none")
	f.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")

	root.AddCommand(newListCmd(a), newPlayCmd(a), newRenderCmd(a))
	return root
}

// setup loads the configuration, lets flags override it and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load(a.envFiles...)

	flags := cmd.Flags()
	if flags.Changed("sounds") {
		a.cfg.SoundDirs = a.dirs
	}
	if flags.Changed("rate") {
		a.cfg.SampleRate = a.rate
	}
	if flags.Changed("channels") {
		a.cfg.Channels = a.channels
	}
	if flags.Changed("fade") {
		d, err := parseDuration(a.fade)
		if err != nil {
			return err
		}
		a.cfg.Fade = d
	}
	if flags.Changed("backend") {
		a.cfg.Backend = a.backend
	}
	if flags.Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-file") {
		a.cfg.LogFile = a.logFile
	}

	log, err := logging.New(logging.Config{
		Level:      a.cfg.LogLevel,
		Format:     a.cfg.LogFormat,
		File:       a.cfg.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// player builds a Player over the configured roots. dev may be nil.
func (a *app) player(dev device.Device) (*noisemix.Player, error) {
	cfg := noisemix.Config{
		Dirs:   a.cfg.SoundDirs,
		Watch:  a.cfg.Watch && dev != nil,
		Engine: a.cfg.Engine(),
	}
	if !a.noBundle {
		cfg.Bundled = sounds.FS()
	}

	opts := []noisemix.Option{noisemix.WithLogger(a.log)}
	if dev != nil {
		opts = append(opts, noisemix.WithDevice(dev))
	}
	return noisemix.New(cfg, opts...)
}
