// Package config loads timeago settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/ptr"

	"github.com/ahmetb/timeago/internal/timeutil"
	"github.com/ahmetb/timeago/internal/updater"
)

// Config holds the resolved settings.
type Config struct {
	ElementID string
	Attribute string
	Interval  time.Duration
	Style     timeutil.Style
}

// Default returns the settings used when neither a file nor a flag sets them.
func Default() Config {
	return Config{
		ElementID: updater.DefaultElementID,
		Attribute: updater.DefaultAttribute,
		Interval:  updater.DefaultInterval,
		Style:     timeutil.StylePhrase,
	}
}

// file is the on-disk form. Unset keys stay nil and keep the defaults.
type file struct {
	ElementID *string `yaml:"elementID"`
	Attribute *string `yaml:"attribute"`
	Interval  *string `yaml:"interval"`
	Style     *string `yaml:"style"`
}

// LoadFile reads the YAML config at path on top of Default().
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	cfg, err := Load(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("error loading config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads a YAML config from r on top of Default(). An empty document
// yields the defaults.
func Load(r io.Reader) (Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}

	def := Default()
	cfg := Config{
		ElementID: ptr.Deref(f.ElementID, def.ElementID),
		Attribute: ptr.Deref(f.Attribute, def.Attribute),
		Interval:  def.Interval,
		Style:     timeutil.Style(ptr.Deref(f.Style, string(def.Style))),
	}

	var errs []error
	if f.Interval != nil {
		d, err := time.ParseDuration(*f.Interval)
		if err != nil {
			errs = append(errs, fmt.Errorf("interval: %w", err))
		} else {
			cfg.Interval = d
		}
	}
	if err := utilerrors.NewAggregate(errs); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.ElementID == "" {
		errs = append(errs, errors.New("elementID must not be empty"))
	}
	if c.Attribute == "" {
		errs = append(errs, errors.New("attribute must not be empty"))
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive (got %s)", c.Interval))
	}
	if _, err := timeutil.ParseStyle(string(c.Style)); err != nil {
		errs = append(errs, err)
	}
	return utilerrors.NewAggregate(errs)
}

// Options converts the settings into updater options.
func (c Config) Options() updater.Options {
	return updater.Options{
		ElementID: c.ElementID,
		Attribute: c.Attribute,
		Interval:  c.Interval,
		Format:    timeutil.Formatter(c.Style),
	}
}
