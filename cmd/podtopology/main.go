/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var setupLog = ctrl.Log.WithName("setup")

func newRootCommand() *cobra.Command {
	var configPath string
	opts := zap.Options{
		Development: true,
	}

	root := &cobra.Command{
		Use:          "podtopology",
		Short:        "Resolve Pod definitions into Kubernetes manifests",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts), zap.WriteTo(cmd.ErrOrStderr())))
		},
	}

	goflags := flag.NewFlagSet("podtopology", flag.ContinueOnError)
	opts.BindFlags(goflags)
	root.PersistentFlags().AddGoFlagSet(goflags)
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file")
	bindConfigFlags(root.PersistentFlags())

	root.AddCommand(
		newRenderCommand(&configPath),
		newConnectionListCommand(&configPath),
	)
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		setupLog.Error(err, "command failed")
		os.Exit(1)
	}
}
