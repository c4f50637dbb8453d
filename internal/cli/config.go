package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/adjustkit/claimlens/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ClaimLens configuration",
	Long: `Manage ClaimLens configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLAIMLENS_*)
3. Config file (~/.claimlens/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, the config file, and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Current Configuration")
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println(string(yamlData))

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()
		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (CLAIMLENS_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.claimlens/config.yaml)")
		fmt.Println("  4. Defaults")
		fmt.Println()

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.claimlens/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.claimlens"
		configPath := configDir + "/config.yaml"

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'claimlens config show' to view it, or delete it first to recreate", configPath)
		}

		// Create directory
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		// Create config file
		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		// Helper for writing with error checking
		printf := func(format string, a ...interface{}) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(f, format, a...)
		}

		defaultCfg := model.DefaultConfig()

		printf("# ClaimLens Configuration File\n")
		printf("#\n")
		printf("# Configuration hierarchy (highest to lowest priority):\n")
		printf("#   1. CLI flags\n")
		printf("#   2. Environment variables (CLAIMLENS_*)\n")
		printf("#   3. This config file\n")
		printf("#   4. Built-in defaults\n\n")

		yamlData, mErr := yaml.Marshal(defaultCfg)
		if mErr != nil {
			return fmt.Errorf("error marshaling config: %w", mErr)
		}

		if err == nil {
			if _, wErr := f.Write(yamlData); wErr != nil {
				return fmt.Errorf("error writing config: %w", wErr)
			}
		}

		printf("\n# API keys are read from the environment, never from this file:\n")
		printf("#   export OPENAI_API_KEY=sk-...\n")
		printf("#   export ANTHROPIC_API_KEY=sk-ant-...\n")
		printf("#   export OLLAMA_BASE_URL=http://localhost:11434\n")

		if err != nil {
			return err
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  claimlens config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n", configPath)
		fmt.Printf("\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
