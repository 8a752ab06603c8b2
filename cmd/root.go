package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/auth"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/config"
	"github.com/kamctl/kamctl/internal/ui"
	"github.com/kamctl/kamctl/internal/utils"
)

var (
	version string
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kamctl",
	Short: "Kameleoon API client and MCP server",
	Long: `kamctl manages Kameleoon sites, goals, experiments, custom data, segments
and accounts from the command line.

Register one or more OAuth clients with 'add-client', pick the active one
with 'switch-client', then either open an interactive session with 'connect'
or expose everything to AI assistants as MCP tools with 'mcp'.

Tracking scripts are backed up locally before every destructive update and
can be restored with the backup commands.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// SetVersion sets the version for the application
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kamctl.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".kamctl")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, _ := homedir.Dir()
			configPath := filepath.Join(home, ".kamctl.yaml")
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	home, _ := homedir.Dir()
	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("credentials.path", filepath.Join(home, ".kamctl", "credentials"))
	viper.SetDefault("backups.dir", filepath.Join(home, ".kamctl", "backups"))
	viper.SetDefault("loglevel", "info")

	level := viper.GetString("loglevel")
	if flag := rootCmd.PersistentFlags().Lookup("loglevel"); flag != nil && flag.Changed {
		level = flag.Value.String()
	}
	utils.SetLogLevel(level)
}

// newLogger builds the UI logger from global flags.
func newLogger() *ui.Logger {
	return ui.NewLogger(verbose, !noColor)
}

// openStore opens the credential store at the configured path.
func openStore() (*config.Store, error) {
	return config.Open(viper.GetString("credentials.path"))
}

// newGateway builds the API client against the configured base URL.
func newGateway() *api.Client {
	return api.New(viper.GetString("api.base_url"))
}

// newAuthManager wires the token manager over the store and gateway.
func newAuthManager(store *config.Store, gateway *api.Client) *auth.Manager {
	return auth.NewManager(store, gateway)
}

// newBackupStore opens the tracking-script backup store.
func newBackupStore() *backup.Store {
	return backup.NewStore(viper.GetString("backups.dir"))
}
