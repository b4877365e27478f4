// Command gofourth is a terminal front end for the forth interpreter core:
// it reads lines, feeds them to Interpret, and renders interpreter output
// on stdout. The core itself has no terminal knowledge; everything here is
// host shim.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jcorbin/gofourth/forth"
)

// profile is the optional gofourth.toml REPL configuration.
type profile struct {
	Prompt  string   `toml:"prompt"`
	History string   `toml:"history"`
	Trace   bool     `toml:"trace"`
	Preload []string `toml:"preload"`
}

func main() {
	var trace bool
	var configPath string
	flag.BoolVar(&trace, "trace", false, "enable execution trace logging")
	flag.StringVar(&configPath, "config", "", "path to a gofourth.toml profile")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gofourth [options] [source...]\n\n")
		fmt.Fprintf(os.Stderr, "Interprets each source argument as one line of input and exits;\n")
		fmt.Fprintf(os.Stderr, "with no source arguments, reads lines interactively.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	prof, err := loadProfile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if trace {
		prof.Trace = true
	}

	opts := []forth.VMOption{forth.WithOutput(os.Stdout)}
	if prof.Trace {
		commonlog.Configure(2, nil)
		log := commonlog.GetLogger("gofourth")
		opts = append(opts, forth.WithLogf(func(mess string, args ...interface{}) {
			log.Debugf(mess, args...)
		}))
	}

	vm := forth.New(opts...)
	for _, line := range prof.Preload {
		vm.Interpret(line)
	}
	for _, arg := range flag.Args() {
		vm.Interpret(arg)
	}
	if flag.NArg() > 0 {
		return
	}

	repl(vm, prof)
}

func repl(vm *forth.VM, prof profile) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if prof.History != "" {
		if f, err := os.Open(prof.History); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(prof.History); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(prof.Prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			return
		}
		if line != "" {
			ln.AppendHistory(line)
		}
		vm.Interpret(line)
	}
}

func loadProfile(path string) (profile, error) {
	prof := profile{Prompt: "> "}
	if path == "" {
		return prof, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prof, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &prof); err != nil {
		return prof, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return prof, nil
}
