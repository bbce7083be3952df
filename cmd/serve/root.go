package serve

import (
	"context"
	"fmt"
	cmdUtil "github.com/ValentinKolb/dictd/cmd/util"
	"github.com/ValentinKolb/dictd/lib/store/lstore"
	"github.com/ValentinKolb/dictd/rpc/common"
	"github.com/ValentinKolb/dictd/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os/signal"
	"syscall"
	"time"
)

var (
	serveCmdConfig = common.DefaultServerConfig()
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dictionary server",
		Long:    `Start the dictionary server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DICT_<flag> (e.g. DICT_PORT=9000 or DICT_IDLE_TIMEOUT=60)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "host"
	ServeCmd.PersistentFlags().String(key, common.DefaultHost, cmdUtil.WrapString("The host (interface) the tcp listener binds to"))

	key = "port"
	ServeCmd.PersistentFlags().Int(key, common.DefaultPort, cmdUtil.WrapString("The port the tcp listener binds to (0 = pick a free port)"))

	key = "socket"
	ServeCmd.PersistentFlags().String(key, "/tmp/dictd.sock", cmdUtil.WrapString("The socket path used by the unix transport"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, common.DefaultLogLevel, cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "max-line-bytes"
	ServeCmd.PersistentFlags().Int(key, common.DefaultMaxLineBytes, cmdUtil.WrapString("The maximum length of a request line in bytes. Longer lines end the session"))

	key = "idle-timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Close sessions that send nothing for this many seconds (0 = never)"))

	key = "shutdown-timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("How long to wait for open sessions to end after SIGINT/SIGTERM, in seconds (0 = wait until all sessions ended)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY on accepted connections"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval of accepted connections in seconds (0 = system default)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, -1, cmdUtil.WrapString("The linger time of accepted connections in seconds (-1 = system default)"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The socket write buffer size in KB (0 = system default)"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The socket read buffer size in KB (0 = system default)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the prometheus /metrics http endpoint (e.g. 127.0.0.1:9124, empty = disabled)"))

	key = "stats-interval"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Log a summary of the command statistics every n seconds (0 = disabled)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	transportType, err := common.ParseTransportType(viper.GetString("transport"))
	if err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport = transportType
	serveCmdConfig.Host = viper.GetString("host")
	serveCmdConfig.Port = viper.GetInt("port")
	serveCmdConfig.SocketPath = viper.GetString("socket")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.MaxLineBytes = viper.GetInt("max-line-bytes")
	serveCmdConfig.IdleTimeoutSecond = viper.GetInt64("idle-timeout")
	serveCmdConfig.ShutdownTimeoutSecond = viper.GetInt64("shutdown-timeout")
	serveCmdConfig.TCPConf = common.TCPConf{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
	}
	serveCmdConfig.SocketConf = common.SocketConf{
		WriteBufferSize: viper.GetInt("write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
	}
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.StatsIntervalSecond = viper.GetInt64("stats-interval")

	if err := serveCmdConfig.Validate(); err != nil {
		return err
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the server and blocks until SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	connector, err := cmdUtil.GetServerConnector(serveCmdConfig.Transport)
	if err != nil {
		return err
	}

	serv := server.NewServer(
		serveCmdConfig,
		connector,
		lstore.NewLocalStore,
	)

	if err := serv.Start(); err != nil {
		return err
	}

	// wait for a shutdown signal; a second signal terminates the process immediately
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	server.Logger.Infof("received shutdown signal, draining sessions (press Ctrl+C again to force exit)")

	shutdownCtx := context.Background()
	if serveCmdConfig.ShutdownTimeoutSecond > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, time.Duration(serveCmdConfig.ShutdownTimeoutSecond)*time.Second)
		defer cancel()
	}

	if err := serv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown incomplete: %w", err)
	}
	return nil
}
