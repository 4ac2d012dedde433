package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/metrics"
	"github.com/ppiankov/legalyze/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const version = "legalyze v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "legalyze",
	Short: "Legalyze - deterministic legal document analysis",
	Long: `Legalyze analyzes legal documents (contracts, policies, agreements) and
reports document type, key clauses, legal terminology, readability,
sentiment, topics, regulatory compliance coverage and a risk index.

Every score comes from fixed rules and dictionaries. An optional LLM
summary can be attached, but it never changes a score.

Legalyze is not legal advice.`,
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
	Long:  `Display the version number for Legalyze.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.legalyze/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// Seed viper with the defaults so every key can be overridden from the environment
	if data, err := yaml.Marshal(model.DefaultConfig()); err == nil {
		viper.SetConfigType("yaml")
		_ = viper.ReadConfig(bytes.NewReader(data))
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".legalyze"))
		viper.SetConfigName("config")
	}

	// LEGALYZE_HTTP_TIMEOUT overrides http.timeout
	viper.SetEnvPrefix("LEGALYZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// omitempty keys are missing from the seeded defaults
	for _, key := range []string{"llm.api_key", "llm.base_url", "http.http_proxy", "http.https_proxy", "http.no_proxy", "cache.redis_password", "metrics.textfile"} {
		_ = viper.BindEnv(key)
	}

	if err := viper.MergeInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults, config file,
// then LEGALYZE_* variables
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if verbose {
		cfg.Output.Verbose = true
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// session holds the ambient services shared by every command
type session struct {
	cfg     *model.Config
	logger  logging.Logger
	metrics *metrics.Metrics
}

func newSession(cfg *model.Config) (*session, error) {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(logger)

	rt := &session{cfg: cfg, logger: logger}
	if cfg.Metrics.Enabled || cfg.Metrics.Textfile != "" {
		rt.metrics = metrics.New()
	}
	return rt, nil
}

// close flushes logs and exports metrics when a textfile is configured
func (rt *session) close() {
	if rt.metrics != nil && rt.cfg.Metrics.Textfile != "" {
		if err := rt.metrics.WriteTextfile(rt.cfg.Metrics.Textfile); err != nil {
			rt.logger.Warn("metrics export failed", logging.Err(err))
		}
	}
	_ = rt.logger.Sync()
}
