package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/numtide/podtopology/pkg/topology"
	"github.com/numtide/podtopology/pkg/version"
)

func newConfigFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", newConfigFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	want := &Config{
		Namespace:   topology.DefaultNamespace,
		DefaultUses: topology.DefaultUses,
		Version: VersionConfig{
			RegistryURL: version.DefaultRegistryURL,
			Timeout:     version.DefaultTimeout,
			Lookup:      true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "podtopology.yaml")
	content := `namespace: from-file
default_uses: FileExecutor
version:
  runtime: "2.0.0"
  timeout: 3s
  lookup: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PODTOPOLOGY_NAMESPACE", "from-env")
	t.Setenv("PODTOPOLOGY_VERSION_RUNTIME", "2.1.0")

	cfg, err := LoadConfig(path, newConfigFlags(t, "--namespace", "from-flag"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Namespace != "from-flag" {
		t.Errorf("namespace = %q, want from-flag", cfg.Namespace)
	}
	if cfg.DefaultUses != "FileExecutor" {
		t.Errorf("default uses = %q, want FileExecutor", cfg.DefaultUses)
	}
	if cfg.Version.Runtime != "2.1.0" {
		t.Errorf("runtime version = %q, want 2.1.0", cfg.Version.Runtime)
	}
	if cfg.Version.Timeout != 3*time.Second {
		t.Errorf("timeout = %s, want 3s", cfg.Version.Timeout)
	}
	if cfg.Version.Lookup {
		t.Error("lookup should be disabled by the config file")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("namespace: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		path        string
		errContains string
	}{
		"missing file": {
			path:        filepath.Join(dir, "missing.yaml"),
			errContains: "failed to read config file",
		},
		"malformed file": {
			path:        broken,
			errContains: "failed to parse config file",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(tc.path, nil)
			if err == nil || !strings.Contains(err.Error(), tc.errContains) {
				t.Errorf("LoadConfig() error = %v, want %q", err, tc.errContains)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg        Config
		wantLookup any
	}{
		"no runtime version": {
			cfg:        Config{Version: VersionConfig{Lookup: true}},
			wantLookup: nil,
		},
		"static version": {
			cfg:        Config{Version: VersionConfig{Runtime: "2.1.0"}},
			wantLookup: version.Static("2.1.0"),
		},
		"registry lookup": {
			cfg: Config{Version: VersionConfig{
				Runtime:     "2.1.0",
				RegistryURL: "http://registry.local/tags",
				Timeout:     time.Second,
				Lookup:      true,
			}},
			wantLookup: &version.RegistryLookup{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := tc.cfg.Options()
			switch want := tc.wantLookup.(type) {
			case nil:
				if opts.Lookup != nil {
					t.Errorf("lookup = %#v, want nil", opts.Lookup)
				}
			case version.Static:
				if opts.Lookup != want {
					t.Errorf("lookup = %#v, want %#v", opts.Lookup, want)
				}
			case *version.RegistryLookup:
				l, ok := opts.Lookup.(*version.RegistryLookup)
				if !ok {
					t.Fatalf("lookup is %T, want *version.RegistryLookup", opts.Lookup)
				}
				if l.URL != "http://registry.local/tags" || l.Version != "2.1.0" || l.Timeout != time.Second {
					t.Errorf("unexpected registry lookup: url=%s version=%s timeout=%s", l.URL, l.Version, l.Timeout)
				}
			}
		})
	}
}
