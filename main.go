// Copyright 2024 Ahmet Alp Balkan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/ahmetb/timeago/internal/config"
	"github.com/ahmetb/timeago/internal/timeutil"
)

type flags struct {
	id       string
	attr     string
	interval time.Duration
	style    string
	config   string
	watch    bool
	serve    string
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	def := config.Default()
	fs.StringVar(&f.id, "id", def.ElementID, "id of the element holding the timestamp")
	fs.StringVar(&f.attr, "attr", def.Attribute, "attribute holding the timestamp")
	fs.DurationVar(&f.interval, "interval", def.Interval, "refresh interval (--watch and --serve)")
	fs.StringVar(&f.style, "style", string(def.Style), "label style (phrase|compact|humanize)")
	fs.StringVar(&f.config, "config", "", "path to a YAML config file")
	fs.BoolVarP(&f.watch, "watch", "w", false, "keep rewriting FILE until interrupted")
	fs.StringVar(&f.serve, "serve", "", "serve the live page on this address (e.g. :8080) until interrupted")
}

// resolveConfig merges the config file (if any) with flags explicitly set on
// fs. Flags win over the file, the file wins over defaults.
func resolveConfig(fs *pflag.FlagSet, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadFile(f.config); err != nil {
			return config.Config{}, err
		}
	}
	if fs.Changed("id") {
		cfg.ElementID = f.id
	}
	if fs.Changed("attr") {
		cfg.Attribute = f.attr
	}
	if fs.Changed("interval") {
		cfg.Interval = f.interval
	}
	if fs.Changed("style") {
		cfg.Style = timeutil.Style(f.style)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	klog.InitFlags(flag.CommandLine)
	defer klog.Flush()

	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		pflag.CommandLine.AddGoFlag(f)
	})
	var fl flags
	bindFlags(pflag.CommandLine, &fl)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [FILE]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Rewrites the text of an HTML element with the time elapsed since its datetime attribute.")
		fmt.Fprintln(os.Stderr, "Reads stdin when FILE is omitted or \"-\".")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() > 1 {
		klog.Fatalf("expected at most one FILE argument, got %d", pflag.NArg())
	}
	file := pflag.Arg(0)
	if fl.watch && fl.serve != "" {
		klog.Fatal("--watch and --serve are mutually exclusive")
	}
	if fl.watch && (file == "" || file == "-") {
		klog.Fatal("--watch requires a FILE argument")
	}

	cfg, err := resolveConfig(pflag.CommandLine, fl)
	if err != nil {
		klog.Fatalf("%v", err)
	}
	klog.V(1).InfoS("resolved configuration", "id", cfg.ElementID, "attr", cfg.Attribute,
		"interval", cfg.Interval, "style", cfg.Style)

	opts := runOptions{cfg: cfg, clock: clock.RealClock{}}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case fl.watch:
		err = watch(ctx, file, opts)
	case fl.serve != "":
		in, rerr := readInput(file)
		if rerr != nil {
			klog.Fatalf("error reading input: %v", rerr)
		}
		err = serve(ctx, fl.serve, in, opts)
	default:
		in, rerr := readInput(file)
		if rerr != nil {
			klog.Fatalf("error reading input: %v", rerr)
		}
		err = run(in, os.Stdout, opts)
	}
	if err != nil {
		klog.Fatalf("%v", err)
	}
}

func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}
