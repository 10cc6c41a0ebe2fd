package cliargs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

type testArgs struct {
	Name    string
	Port    int32
	Quiet   bool
	Verbose bool
	Extra   string
	Tags    []string
}

func (a *testArgs) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.Name, "name", a.Name, "name")
	fs.Int32Var(&a.Port, "port-in", a.Port, "port")
	fs.BoolVar(&a.Quiet, "quiet", a.Quiet, "quiet")
	fs.BoolVar(&a.Verbose, "verbose", a.Verbose, "verbose")
	fs.StringVar(&a.Extra, "extra", a.Extra, "extra")
	fs.StringSliceVar(&a.Tags, "tags", a.Tags, "tags")
}

func TestToParameters(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args *testArgs
		skip []string
		want []string
	}{
		"registration order, empty values dropped": {
			args: &testArgs{Name: "encoder", Port: 8081, Quiet: true},
			want: []string{"--name", "encoder", "--port-in", "8081", "--quiet"},
		},
		"skip list": {
			args: &testArgs{Name: "encoder", Port: 8081, Extra: "x"},
			skip: []string{"name", "extra"},
			want: []string{"--port-in", "8081"},
		},
		"zero ints are kept": {
			args: &testArgs{},
			want: []string{"--port-in", "0"},
		},
		"slices": {
			args: &testArgs{Port: 1, Tags: []string{"a", "b"}},
			want: []string{"--port-in", "1", "--tags", "[a,b]"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := ToParameters(tc.args, tc.skip...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ToParameters() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToParameters_DoesNotMutate(t *testing.T) {
	in := &testArgs{Name: "encoder", Port: 8081, Quiet: true}
	want := *in
	_ = ToParameters(in, "quiet")
	if diff := cmp.Diff(want, *in); diff != "" {
		t.Errorf("ToParameters mutated its input (-want +got):\n%s", diff)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	in := &testArgs{Name: "encoder", Port: 8081, Quiet: true, Extra: "with space"}
	out := &testArgs{}
	if err := Parse(out, ToParameters(in)); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownFlag(t *testing.T) {
	err := Parse(&testArgs{}, []string{"--nope", "1"})
	if err == nil || !strings.Contains(err.Error(), "failed to parse arguments") {
		t.Errorf("Parse() error = %v, want wrapped parse failure", err)
	}
}
