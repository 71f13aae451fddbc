// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/noisemix"
	"github.com/ik5/noisemix/device"
)

const loadTimeout = 10 * time.Second

func newRenderCmd(a *app) *cobra.Command {
	var (
		specs   []string
		out     string
		seconds float64
	)

	cmd := &cobra.Command{
		Use:   "render [id...]",
		Short: "Mix sounds into a WAV file instead of playing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			preload, err := parseTrackSpecs(append(specs, args...))
			if err != nil {
				return err
			}
			if len(preload) == 0 {
				return errors.New("nothing to render, name at least one track")
			}

			p, err := a.player(nil)
			if err != nil {
				return err
			}
			defer p.Close()

			for _, spec := range preload {
				if spec.hasLevel {
					_ = p.SetVolume(spec.id, spec.level)
				}
				_ = p.Play(spec.id)
			}

			if err := waitLoaded(p); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}

			eng := p.Engine()
			frames := int(seconds * float64(eng.SampleRate()))
			if err := device.Render(f, eng, frames); err != nil {
				_ = f.Close()
				return fmt.Errorf("rendering: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			snap := p.Snapshot()
			a.log.Info("rendered mix",
				zap.String("file", out),
				zap.Float64("seconds", seconds),
				zap.Int("tracks", snap.Stats.Active),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tracks, %.1fs)\n", out, snap.Stats.Active, seconds)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&specs, "track", "t", nil, "track to mix, as id or id=level")
	cmd.Flags().StringVarP(&out, "out", "o", "mix.wav", "output WAV file")
	cmd.Flags().Float64Var(&seconds, "seconds", 30, "length of the mix")
	return cmd
}

// waitLoaded applies the queued commands and pulls silent buffers until
// every track has its decoder, so the file starts with the fade in.
func waitLoaded(p *noisemix.Player) error {
	eng := p.Engine()
	buf := make([]float32, eng.Channels())
	deadline := time.Now().Add(loadTimeout)

	for {
		_, _ = eng.ReadSamples(buf)
		if p.Snapshot().Stats.Loading == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.New("timed out loading tracks")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
