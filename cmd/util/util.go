package util

import (
	"fmt"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/transport"
	"github.com/ValentinKolb/dictd/rpc/transport/tcp"
	"github.com/ValentinKolb/dictd/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (DICT_<FLAG>)
	EnvPrefix = "dict"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes viper read DICT_<FLAG> environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupClientFlags adds the connection flags of the line client to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of every client operation (0 = no timeout)"))

	key = "endpoint"
	cmd.PersistentFlags().String(key, fmt.Sprintf("%s:%d", common.DefaultHost, common.DefaultPort), WrapString("The address of the dictd server (host:port for tcp, socket path for unix)"))
}

// GetClientConfig reads the client configuration from viper
func GetClientConfig() (*common.ClientConfig, error) {
	transportType, err := common.ParseTransportType(viper.GetString("transport"))
	if err != nil {
		return nil, err
	}

	return &common.ClientConfig{
		Transport:     transportType,
		Endpoint:      viper.GetString("endpoint"),
		TimeoutSecond: viper.GetInt("timeout"),
	}, nil
}

// GetClientConnector creates the dial side of the configured transport
func GetClientConnector(t common.TransportType) (transport.IClientConnector, error) {
	switch t {
	case common.TransportTCP:
		return tcp.NewTCPClientConnector(), nil
	case common.TransportUnix:
		return unix.NewUnixClientConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", t)
	}
}

// GetServerConnector creates the listen side of the configured transport
func GetServerConnector(t common.TransportType) (transport.IServerConnector, error) {
	switch t {
	case common.TransportTCP:
		return tcp.NewTCPServerConnector(), nil
	case common.TransportUnix:
		return unix.NewUnixServerConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", t)
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
