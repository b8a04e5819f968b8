package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "transit",
	Short: "Sign durations, aspect timing and transit significance",
	Long: `Transit reports how long planets stay in their signs, when aspects to a
natal chart begin, perfect and end, and which simultaneous transits matter most.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .transit.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("segments", "", "TOML segment table (default: embedded table)")
	flags.String("telemetry", "", "append JSONL telemetry events to this file")
	flags.StringP("output", "o", "text", "output format: text or json")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("segments_path", flags.Lookup("segments"))
	_ = viper.BindPFlag("telemetry_path", flags.Lookup("telemetry"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".transit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TRANSIT")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
