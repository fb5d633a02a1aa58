package main

import (
	"fmt"
	"os"

	"github.com/JasperK04/KTP/internal/config"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	kbPath     string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ktp",
	Short: "ktp - fastening and bonding method advisor",
	Long: `ktp recommends fastening and bonding methods for joining two materials.

It asks about the materials, the environment and the constraints of the job,
derives hard requirements from a declarative rule base, and filters a catalog
of fasteners and adhesives down to the methods that satisfy every requirement.

Run without arguments to start an interactive consultation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Interactive consultation keeps stderr clean; everything else
		// logs to the console.
		logFile := ""
		if cmd.Name() == "consult" || cmd.Name() == "ktp" {
			logFile = cfg.Logging.File
		}
		logger, err = logging.New(verbose || cfg.Logging.Level == "debug", logFile)
		if err != nil {
			return err
		}
		logging.Named(logger, logging.CategoryCLI).Debug("command starting",
			zap.String("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch an interactive consultation
		return runConsult(cmd, args)
	},
}

// loadKB loads the knowledge base: the --kb flag wins, then the configured
// path, then the embedded default.
func loadKB() (*kb.KnowledgeBase, error) {
	path := kbPath
	if path == "" {
		path = cfg.KB.Path
	}
	if path == "" {
		return kb.LoadDefault()
	}
	return kb.Load(path)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ktp.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&kbPath, "kb", "", "path to knowledge base file (default: embedded)")

	rootCmd.AddCommand(consultCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
