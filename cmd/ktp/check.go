package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JasperK04/KTP/internal/config"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/logging"
	"github.com/spf13/cobra"
)

var watchKB bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a knowledge base file",
	Long: `Loads the knowledge base, reports the first schema error if loading
fails, and lints condition attribute paths against the known attribute
schema. Unknown paths are warnings: the affected conditions can never hold.

With --watch (or kb.watch in the config file) the file is re-checked
whenever it changes on disk.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&watchKB, "watch", "w", false, "re-check on file change")
}

// watchEnabled resolves the watch setting: an explicit --watch wins over the
// kb.watch config default.
func watchEnabled(flagChanged, flagValue bool, cfg *config.Config) bool {
	if flagChanged {
		return flagValue
	}
	return cfg.KB.Watch
}

func runCheck(cmd *cobra.Command, args []string) error {
	k, err := loadKB()
	if err != nil {
		return err
	}
	reportCheck(k)

	if !watchEnabled(cmd.Flags().Changed("watch"), watchKB, cfg) {
		if len(k.Lint()) > 0 {
			os.Exit(1)
		}
		return nil
	}

	path := kbPath
	if path == "" {
		path = cfg.KB.Path
	}
	if path == "" {
		return fmt.Errorf("--watch requires an external knowledge base (--kb or kb.path)")
	}

	watcher, err := kb.NewWatcher(path, logging.Named(logger, logging.CategoryKB), func(reloaded *kb.KnowledgeBase) {
		reportCheck(reloaded)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Println(mutedStyle.Render("Watching " + path + " (ctrl-c to stop)"))
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func reportCheck(k *kb.KnowledgeBase) {
	fmt.Printf("%s %d questions, %d materials, %d fasteners, %d rules, %d suggestion rules\n",
		successStyle.Render("Loaded:"),
		len(k.Questions), len(k.Materials), len(k.Fasteners), len(k.Rules), len(k.Suggestions))

	warnings := k.Lint()
	if len(warnings) == 0 {
		fmt.Println(successStyle.Render("No unknown attribute paths."))
		return
	}
	for _, w := range warnings {
		fmt.Println(warningStyle.Render("Warning: ") + w.Error())
	}
}
