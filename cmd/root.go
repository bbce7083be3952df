package cmd

import (
	"fmt"
	"github.com/ValentinKolb/dictd/cmd/dict"
	"github.com/ValentinKolb/dictd/cmd/serve"
	"github.com/ValentinKolb/dictd/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dictd",
		Short: "line based dictionary server",
		Long: fmt.Sprintf(`dictd (v%s)

A small dictionary server written in Go. Clients connect over TCP (or a unix socket)
and store and look up word descriptions with a human readable line protocol
(GET <word>, SET <word> <desc>, CLEAR, ALL).`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dictd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dictd v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(dict.DictCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
