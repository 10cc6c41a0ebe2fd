package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/yaml"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
	"github.com/numtide/podtopology/pkg/manifest"
	"github.com/numtide/podtopology/pkg/topology"
)

const (
	formatManifests = "manifests"
	formatUnits     = "units"
)

func newRenderCommand(configPath *string) *cobra.Command {
	var file string
	var format string

	cmd := &cobra.Command{
		Use:   "render -f <pod.yaml>",
		Short: "Render the Kubernetes manifests of a Pod",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*configPath, cmd.Flags())
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open pod spec: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runRender(cmd.Context(), cfg.Options(), in, cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Pod spec file, - reads stdin")
	cmd.Flags().StringVarP(&format, "output", "o", formatManifests, "output format: manifests or units")
	return cmd
}

// runRender reads one PodSpec from in and writes its resolved topology to out.
func runRender(ctx context.Context, opts topology.Options, in io.Reader, out io.Writer, format string) error {
	logger := log.FromContext(ctx)

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read pod spec: %w", err)
	}
	spec := &podv1alpha1.PodSpec{}
	if err := yaml.UnmarshalStrict(data, spec); err != nil {
		return fmt.Errorf("failed to parse pod spec: %w", err)
	}

	units, err := topology.Resolve(ctx, spec, opts)
	if err != nil {
		return err
	}
	logger.Info("Resolved pod topology", "pod", spec.Name, "units", len(units))

	var encoded []byte
	switch format {
	case formatUnits:
		encoded, err = yaml.Marshal(units)
		if err != nil {
			return fmt.Errorf("failed to encode units: %w", err)
		}
	case formatManifests:
		var objs []client.Object
		for i := range units {
			unitObjs, err := manifest.BuildObjects(&units[i])
			if err != nil {
				return fmt.Errorf("failed to build manifests of unit %q: %w", units[i].Name, err)
			}
			objs = append(objs, unitObjs...)
		}
		encoded, err = manifest.EncodeYAML(objs)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	_, err = out.Write(encoded)
	return err
}
