// Command zimdsp is the patch-file player and interactive REPL for the
// Zim-DSP engine. Grounded on the teacher's cmd/play_mml/main.go
// flag-driven single-binary shape, generalized here from one fixed MML
// playback path into two subcommands (play, repl) and ported from the
// stdlib flag package to github.com/spf13/pflag so each subcommand gets
// its own POSIX-style flag set.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/navicore/zimdsp"
	"github.com/navicore/zimdsp/internal/audio"
	"github.com/navicore/zimdsp/internal/zimrt"
)

// Exit codes per spec.md §6.
const (
	exitNormal      = 0
	exitCompileErr  = 1
	exitAudioDevErr = 2
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitCompileErr)
	}

	switch os.Args[1] {
	case "play":
		os.Exit(runPlay(os.Args[2:]))
	case "repl":
		os.Exit(runRepl(os.Args[2:]))
	default:
		usage()
		os.Exit(exitCompileErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: zimdsp play <file.zim> | zimdsp repl")
}

func runPlay(args []string) int {
	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	sampleRate := fs.IntP("sample-rate", "r", 44100, "output sample rate in Hz")
	if err := fs.Parse(args); err != nil {
		return exitCompileErr
	}
	if fs.NArg() != 1 {
		usage()
		return exitCompileErr
	}

	path := fs.Arg(0)
	text, err := os.ReadFile(path)
	if err != nil {
		log.Error("read patch file", "path", path, "err", err)
		return exitCompileErr
	}

	patch, err := zimdsp.Compile(string(text), float64(*sampleRate))
	if err != nil {
		log.Error("compile patch", "path", path, "err", err)
		return exitCompileErr
	}

	e := zimdsp.NewEngine(zimdsp.WithSampleRateHz(float64(*sampleRate)))
	e.Enqueue(zimrt.LoadPatchCommand(patch))
	e.Enqueue(zimrt.StartCommand())

	player, err := audio.NewPlayer(*sampleRate, e)
	if err != nil {
		log.Error("open audio device", "err", err)
		return exitAudioDevErr
	}
	defer player.Stop()

	go drainDiagnostics(e)

	log.Info("playing", "path", path, "sample_rate", *sampleRate)
	player.Play()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	log.Info("stopping")
	return exitNormal
}

func runRepl(args []string) int {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	sampleRate := fs.IntP("sample-rate", "r", 44100, "output sample rate in Hz")
	if err := fs.Parse(args); err != nil {
		return exitCompileErr
	}

	e := zimdsp.NewEngine(zimdsp.WithSampleRateHz(float64(*sampleRate)))
	player, err := audio.NewPlayer(*sampleRate, e)
	if err != nil {
		log.Error("open audio device", "err", err)
		return exitAudioDevErr
	}
	defer player.Stop()
	player.Play()

	go drainDiagnostics(e)

	var pending strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "quit":
			return exitNormal
		case "start":
			patch, err := zimdsp.Compile(pending.String(), float64(*sampleRate))
			if err != nil {
				log.Error("compile pending patch", "err", err)
				continue
			}
			e.Enqueue(zimrt.LoadPatchCommand(patch))
			e.Enqueue(zimrt.StartCommand())
		case "stop":
			e.Enqueue(zimrt.StopCommand())
		case "load":
			if len(fields) != 2 {
				log.Error("load requires a path argument")
				continue
			}
			text, err := os.ReadFile(fields[1])
			if err != nil {
				log.Error("read patch file", "path", fields[1], "err", err)
				continue
			}
			patch, err := zimdsp.Compile(string(text), float64(*sampleRate))
			if err != nil {
				log.Error("compile patch", "path", fields[1], "err", err)
				continue
			}
			pending.Reset()
			pending.WriteString(string(text))
			e.Enqueue(zimrt.LoadPatchCommand(patch))
			e.Enqueue(zimrt.StartCommand())
		case "g", "gate":
			if len(fields) != 2 {
				log.Error("gate requires a module name")
				continue
			}
			e.Enqueue(zimrt.PressGateCommand(fields[1]))
		case "r", "release":
			if len(fields) != 2 {
				log.Error("release requires a module name")
				continue
			}
			e.Enqueue(zimrt.ReleaseGateCommand(fields[1]))
		default:
			pending.WriteString(line)
			pending.WriteString("\n")
		}
	}
	return exitNormal
}

// drainDiagnostics logs NaN-clamp events reported by the audio thread;
// it is the only place in the process that reads Engine.Diagnostics,
// keeping the audio context itself log-free.
func drainDiagnostics(e *zimrt.Engine) {
	for moduleName := range e.Diagnostics() {
		log.Warn("clamped non-finite output", "module", moduleName)
	}
}
