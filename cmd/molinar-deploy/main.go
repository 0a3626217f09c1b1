// Command molinar-deploy packs a built web front-end into a zip and pushes
// it onto a device, either file by file or as one bundle.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set by the build.
	Version = "dev"

	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "molinar-deploy",
	Short: "Package and upload the device web interface",
	Long: `molinar-deploy zips a built web front-end and uploads it to a
Molinar device, either one file at a time through the upload API or as
a whole bundle the device extracts itself.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./molinar.yaml)")
	flags.String("host", "http://192.168.4.1", "device base URL")
	flags.Duration("timeout", 30*time.Second, "timeout for each device request")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("host", flags.Lookup("host"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))

	rootCmd.AddCommand(
		newPackCmd(),
		newListCmd(),
		newUploadCmd(),
		newPushCmd(),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("molinar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/molinar")
	}

	// MOLINAR_HOST, MOLINAR_DIST, ...
	viper.SetEnvPrefix("MOLINAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
