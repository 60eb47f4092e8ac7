// Package updater keeps a relative "time ago" label on a page current.
package updater

import (
	"context"
	"errors"
	"sync"
	"time"

	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/ahmetb/timeago/internal/timeutil"
)

const (
	DefaultElementID = "timestamp"
	DefaultAttribute = "datetime"
	DefaultInterval  = time.Second
)

// Options configures an Updater. Zero values select the defaults.
type Options struct {
	// ElementID identifies the display element.
	ElementID string
	// Attribute is the attribute on the display element holding the timestamp.
	Attribute string
	// Interval between refreshes after the first one.
	Interval time.Duration
	Clock    clock.WithTicker
	Format   timeutil.FormatFunc
	// Location for timestamps that carry no offset.
	Location *time.Location
	// OnUpdate, when set, is called after every cycle that wrote the label.
	// It runs on the refresh goroutine after the page is released.
	OnUpdate func()
}

func (o Options) withDefaults() Options {
	if o.ElementID == "" {
		o.ElementID = DefaultElementID
	}
	if o.Attribute == "" {
		o.Attribute = DefaultAttribute
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Format == nil {
		o.Format = timeutil.FormatRelativeTime
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Updater rewrites the display element's text with the time elapsed since
// its timestamp attribute.
type Updater struct {
	page Page
	opts Options

	mu      sync.Mutex
	running bool
}

// New returns an Updater for page.
func New(page Page, opts Options) *Updater {
	return &Updater{page: page, opts: opts.withDefaults()}
}

// Update runs one read-compute-write cycle and reports whether the label was
// written. A missing element, or a missing or empty attribute, is a no-op.
// So is a timestamp that does not parse: the label keeps its previous text
// instead of showing a "NaN days ago" style placeholder.
func (u *Updater) Update() bool {
	var wrote bool
	u.page.Do(func() {
		wrote = u.update()
	})
	if wrote && u.opts.OnUpdate != nil {
		u.opts.OnUpdate()
	}
	return wrote
}

func (u *Updater) update() bool {
	el, ok := u.page.ElementByID(u.opts.ElementID)
	if !ok {
		return false
	}
	v, ok := el.Attribute(u.opts.Attribute)
	if !ok || v == "" {
		return false
	}
	then, err := timeutil.ParseTimestamp(v, u.opts.Location)
	if err != nil {
		klog.V(2).InfoS("skipping refresh", "id", u.opts.ElementID, "err", err)
		return false
	}
	text := u.opts.Format(u.opts.Clock.Now(), then)
	el.SetTextContent(text)
	klog.V(3).InfoS("refreshed label", "id", u.opts.ElementID, "text", text)
	return true
}

// ErrRunning is returned by Start when the updater is already started.
var ErrRunning = errors.New("updater is already running")

// Start refreshes the label once on the calling goroutine, then every
// Interval on a background goroutine until ctx is done or stop is called.
// stop is safe to call more than once and returns after the goroutine exits.
func (u *Updater) Start(ctx context.Context) (stop func(), err error) {
	u.mu.Lock()
	if u.running {
		u.mu.Unlock()
		return nil, ErrRunning
	}
	u.running = true
	u.mu.Unlock()

	u.Update()

	ctx, cancel := context.WithCancel(ctx)
	ticker := u.opts.Clock.NewTicker(u.opts.Interval)
	done := make(chan struct{})

	klog.V(1).InfoS("started refresh loop", "id", u.opts.ElementID, "interval", u.opts.Interval)
	go func() {
		defer close(done)
		defer utilruntime.HandleCrash()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				u.Update()
			}
		}
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			<-done
			u.mu.Lock()
			u.running = false
			u.mu.Unlock()
			klog.V(1).InfoS("stopped refresh loop", "id", u.opts.ElementID)
		})
	}
	return stop, nil
}
