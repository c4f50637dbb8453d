package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adjustkit/claimlens/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "ClaimLens - First notice of loss intake and evidence quality",
	Long: `ClaimLens turns messy insurance claim intake into one canonical record.

It reads the claimant's narrative, classifies the uploaded attachments,
and fuses both into a single property damage claim with per-field
provenance: where each value came from and how confident the extractor
was.

Every claim then gets a quality check: a completeness score, the
contradictions in the story, and the questions worth asking the claimant
next. ClaimLens flags and asks; it never approves, denies, or repairs a
claim on its own.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for ClaimLens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimlens v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMLENS_*
	viper.SetEnvPrefix("CLAIMLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration: built-in defaults
// overlaid with whatever viper read from the config file. Flag handling
// stays in the commands, applied on top of this.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed configuration: %v\n", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg
}

// extractorLabel describes the configured extractor for status output,
// naming the model that will actually run when the provider has one
func extractorLabel(cfg *model.Config) string {
	name := cfg.Extractor.Model
	if name == "" {
		name = model.DefaultModelFor(cfg.Extractor.Provider)
	}
	if name == "" {
		return cfg.Extractor.Provider
	}
	return fmt.Sprintf("%s (%s)", cfg.Extractor.Provider, name)
}
