// SPDX-License-Identifier: EPL-2.0

// Package noisemix is an ambient noise mixer: any number of looping sounds
// play at once, each with its own volume, under a master volume. Every
// change fades, so starting, stopping and adjusting never clicks.
//
// # Quick Start
//
//	dev, _ := device.Open(device.BackendOto, 48000, 2, 1024)
//
//	p, err := noisemix.New(noisemix.Config{
//		Bundled: sounds.FS(),
//		Dirs:    []string{"/home/me/.config/noisemix/sounds"},
//		Engine:  engine.DefaultConfig(),
//	}, noisemix.WithDevice(dev))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.Play("rain")
//	p.SetVolume("rain", 0.6)
//	p.Play("white_noise")
//	p.SetMasterVolume(0.8)
//
// # Track Ids
//
// Tracks are found by scanning the bundled sounds and then each directory
// in Config.Dirs. The id of a track is its file name without extension,
// lower-cased, with spaces, dashes and underscores folded into one
// underscore: "Heavy Rain.ogg" is "heavy_rain". A file in a later root
// replaces a bundled one with the same id. The first directory below a root
// is the track's category.
//
// # Threading
//
// Control methods never wait for audio. They queue a command that the audio
// goroutine applies before its next buffer, in the order the commands were
// made. Results are visible through Snapshot, which always reflects whole
// buffers, and through Events.
//
// # Formats
//
// WAV, MP3, Ogg Vorbis, FLAC and AIFF are decoded by the packages under
// formats. Sounds are read into memory once and decoded again from memory
// each time they loop.
//
// See the engine package for the mixing rules and the device package for
// output backends and offline rendering.
package noisemix
