package dict

import (
	"github.com/ValentinKolb/dictd/cmd/util"
	"github.com/ValentinKolb/dictd/rpc/client"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/spf13/cobra"
)

var (
	clientConfig    *common.ClientConfig
	clientConnector transport.IClientConnector

	// DictCommands represents the dictionary command group
	DictCommands = &cobra.Command{
		Use:               "dict",
		Short:             "Perform dictionary operations on a running server",
		PersistentPreRunE: setupClientConfig,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add client connection flags to the dict command
	util.SetupClientFlags(DictCommands)

	// Add subcommands
	DictCommands.AddCommand(getCmd)
	DictCommands.AddCommand(setCmd)
	DictCommands.AddCommand(clearCmd)
	DictCommands.AddCommand(allCmd)
	DictCommands.AddCommand(perfTestCmd)
}

// setupClientConfig resolves the client configuration and the transport connector
func setupClientConfig(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	if clientConfig, err = util.GetClientConfig(); err != nil {
		return err
	}
	clientConnector, err = util.GetClientConnector(clientConfig.Transport)
	return err
}

// withClient dials the server, runs fn and says goodbye
func withClient(fn func(c *client.Client) error) error {
	c, err := client.Dial(*clientConfig, clientConnector)
	if err != nil {
		return err
	}

	if err := fn(c); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}
