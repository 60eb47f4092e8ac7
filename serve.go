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
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/ahmetb/timeago/internal/dom"
	"github.com/ahmetb/timeago/internal/updater"
)

const shutdownTimeout = 5 * time.Second

// pageHandler serves the current state of doc at "/".
func pageHandler(doc *dom.Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := doc.Render(w); err != nil {
			klog.ErrorS(err, "error serving page", "remote", r.RemoteAddr)
		}
	})
}

// serve keeps the label of the page in `in` current and serves the page on
// addr until ctx is done.
func serve(ctx context.Context, addr string, in []byte, opts runOptions) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", addr, err)
	}
	return serveListener(ctx, ln, in, opts)
}

func serveListener(ctx context.Context, ln net.Listener, in []byte, opts runOptions) error {
	doc, err := parseDocument(in)
	if err != nil {
		ln.Close()
		return err
	}

	stop, err := updater.New(updater.ForDocument(doc), opts.updaterOptions()).Start(ctx)
	if err != nil {
		ln.Close()
		return err
	}
	defer stop()

	srv := &http.Server{
		Handler:           pageHandler(doc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		klog.InfoS("serving page", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error serving page: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error serving page: %w", err)
	}
	return nil
}
