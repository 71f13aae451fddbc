// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/noisemix"
	"github.com/ik5/noisemix/device"
	"github.com/ik5/noisemix/engine"
)

func newPlayCmd(a *app) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "play [id...]",
		Short: "Play sounds and control them from an interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			preload, err := parseTrackSpecs(append(specs, args...))
			if err != nil {
				return err
			}

			dev, err := device.Open(a.cfg.Backend, a.cfg.SampleRate, a.cfg.Channels, a.cfg.BufferFrames)
			if err != nil {
				return err
			}
			if dev == nil {
				return errors.New("play needs an output backend; use render for offline mixing")
			}

			p, err := a.player(dev)
			if err != nil {
				_ = dev.Close()
				return err
			}
			defer p.Close()

			for _, spec := range preload {
				if spec.hasLevel {
					_ = p.SetVolume(spec.id, spec.level)
				}
				_ = p.Play(spec.id)
			}

			return runShell(p, a.log)
		},
	}

	cmd.Flags().StringArrayVarP(&specs, "track", "t", nil, "track to start, as id or id=level")
	return cmd
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "noisemix", "history")
}

func completer(p *noisemix.Player) readline.AutoCompleter {
	ids := func(string) []string {
		var out []string
		for _, d := range p.Tracks() {
			out = append(out, d.ID)
		}
		return out
	}
	active := func(string) []string { return p.Snapshot().Active() }

	return readline.NewPrefixCompleter(
		readline.PcItem("play", readline.PcItemDynamic(ids)),
		readline.PcItem("stop", readline.PcItemDynamic(active)),
		readline.PcItem("pause", readline.PcItemDynamic(active)),
		readline.PcItem("resume", readline.PcItemDynamic(active)),
		readline.PcItem("vol", readline.PcItemDynamic(ids)),
		readline.PcItem("master"),
		readline.PcItem("stopall"),
		readline.PcItem("pauseall"),
		readline.PcItem("resumeall"),
		readline.PcItem("status"),
		readline.PcItem("levels"),
		readline.PcItem("list"),
		readline.PcItem("rescan"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

func runShell(p *noisemix.Player, log *zap.Logger) error {
	if hf := historyFile(); hf != "" {
		_ = os.MkdirAll(filepath.Dir(hf), 0o755)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "noisemix> ",
		HistoryFile:     historyFile(),
		AutoComplete:    completer(p),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer rl.Close()

	sh := newShell(p, rl.Stdout())
	sh.tap = p.Engine().Tap
	sh.rate, sh.channels = p.Engine().SampleRate(), p.Engine().Channels()

	go printEvents(rl.Stdout(), p.Events())

	fmt.Fprintln(rl.Stdout(), "type help for commands")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := sh.exec(line)
		if err != nil {
			fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
			log.Debug("shell command failed", zap.String("line", line), zap.Error(err))
		}
		if quit {
			return nil
		}
	}
}

// printEvents reports what the engine could not do; routine state changes
// are visible through status.
func printEvents(w io.Writer, events <-chan engine.Event) {
	for ev := range events {
		switch ev.Kind {
		case engine.EventTrackFailed:
			fmt.Fprintf(w, "! %s: %v\n", ev.Track, ev.Err)
		case engine.EventCommandIgnored:
			fmt.Fprintf(w, "? %v\n", ev.Err)
		}
	}
}

type trackSpec struct {
	id       string
	level    float32
	hasLevel bool
}

// parseTrackSpecs reads "id" or "id=level" where level is anything
// parseLevel accepts.
func parseTrackSpecs(specs []string) ([]trackSpec, error) {
	out := make([]trackSpec, 0, len(specs))
	for _, s := range specs {
		id, level, found := strings.Cut(s, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("empty track id in %q", s)
		}
		spec := trackSpec{id: id}
		if found {
			v, err := parseLevel(level)
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", id, err)
			}
			spec.level, spec.hasLevel = v, true
		}
		out = append(out, spec)
	}
	return out, nil
}
