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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/ahmetb/timeago/internal/config"
	"github.com/ahmetb/timeago/internal/dom"
	"github.com/ahmetb/timeago/internal/updater"
)

type runOptions struct {
	cfg   config.Config
	clock clock.WithTicker
}

func (o runOptions) updaterOptions() updater.Options {
	uo := o.cfg.Options()
	uo.Clock = o.clock
	return uo
}

func parseDocument(in []byte) (*dom.Document, error) {
	doc, err := dom.Parse(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("error parsing input: %w", err)
	}
	return doc, nil
}

// run refreshes the label once and writes the resulting document to w. A
// document without the label is written back unchanged.
func run(in []byte, w io.Writer, opts runOptions) error {
	doc, err := parseDocument(in)
	if err != nil {
		return err
	}
	if !updater.New(updater.ForDocument(doc), opts.updaterOptions()).Update() {
		klog.V(1).InfoS("label not refreshed", "id", opts.cfg.ElementID, "attr", opts.cfg.Attribute)
	}
	return doc.Render(w)
}

// watch rewrites the file at path after every refresh until ctx is done.
func watch(ctx context.Context, path string, opts runOptions) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	doc, err := parseDocument(in)
	if err != nil {
		return err
	}

	uo := opts.updaterOptions()
	uo.OnUpdate = func() {
		if err := doc.WriteFile(path); err != nil {
			klog.ErrorS(err, "error writing page", "path", path)
		}
	}
	stop, err := updater.New(updater.ForDocument(doc), uo).Start(ctx)
	if err != nil {
		return err
	}
	klog.V(1).InfoS("watching", "path", path)
	<-ctx.Done()
	stop()
	return nil
}
