package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ahmetb/timeago/internal/config"
	"github.com/ahmetb/timeago/internal/timeutil"
)

func TestResolveConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "timeago.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("elementID: last-run\ninterval: 10s\nstyle: compact\n"), 0o644))

	cases := []struct {
		name     string
		args     []string
		errFunc  require.ErrorAssertionFunc
		expected config.Config
	}{
		{
			name:     "defaults",
			errFunc:  require.NoError,
			expected: config.Default(),
		},
		{
			name:    "flags",
			args:    []string{"--id=t", "--attr=data-ts", "--interval=2s", "--style=humanize"},
			errFunc: require.NoError,
			expected: config.Config{
				ElementID: "t",
				Attribute: "data-ts",
				Interval:  2 * time.Second,
				Style:     timeutil.StyleHumanize,
			},
		},
		{
			name:    "config file",
			args:    []string{"--config", cfgFile},
			errFunc: require.NoError,
			expected: config.Config{
				ElementID: "last-run",
				Attribute: "datetime",
				Interval:  10 * time.Second,
				Style:     timeutil.StyleCompact,
			},
		},
		{
			name:    "flags override config file",
			args:    []string{"--config", cfgFile, "--style=phrase"},
			errFunc: require.NoError,
			expected: config.Config{
				ElementID: "last-run",
				Attribute: "datetime",
				Interval:  10 * time.Second,
				Style:     timeutil.StylePhrase,
			},
		},
		{
			name:    "invalid style",
			args:    []string{"--style=loud"},
			errFunc: require.Error,
		},
		{
			name:    "invalid interval",
			args:    []string{"--interval=0s"},
			errFunc: require.Error,
		},
		{
			name:    "missing config file",
			args:    []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")},
			errFunc: require.Error,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			var fl flags
			bindFlags(fs, &fl)
			require.NoError(t, fs.Parse(tc.args))

			got, err := resolveConfig(fs, fl)
			tc.errFunc(t, err)
			if err != nil {
				return
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
