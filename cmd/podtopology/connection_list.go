package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numtide/podtopology/pkg/topology"
)

func newConnectionListCommand(configPath *string) *cobra.Command {
	var shards int32
	var port int32

	cmd := &cobra.Command{
		Use:   "connection-list <pod>",
		Short: "Print the static shard routing table of a Pod head",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*configPath, cmd.Flags())
			if err != nil {
				return err
			}
			list, err := topology.BuildConnectionList(shards, args[0], cfg.Namespace, port)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), list)
			return err
		},
	}

	cmd.Flags().Int32Var(&shards, "shards", 1, "number of shards of the Pod")
	cmd.Flags().Int32Var(&port, "port", topology.HeadPortIn, "ingress port of the shards")
	return cmd
}
