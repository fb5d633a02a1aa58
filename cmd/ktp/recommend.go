package main

import (
	"fmt"
	"os"

	"github.com/JasperK04/KTP/internal/logging"
	"github.com/JasperK04/KTP/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	answersPath  string
	outputFormat string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend methods from an answers file",
	Long: `Runs a full consultation non-interactively from a YAML answers file.

The file maps question ids to answers:

  material_a_type: wood
  material_b_type: wood
  permanence: removable
  environment_moisture: none

Unknown question ids are rejected. Unanswered questions are treated as
skipped.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&answersPath, "answers", "a", "", "path to YAML answers file (required)")
	recommendCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or yaml")
	_ = recommendCmd.MarkFlagRequired("answers")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	k, err := loadKB()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(answersPath)
	if err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("failed to parse answers: %w", err)
	}

	s := session.New(k, session.WithLogger(logging.Named(logger, logging.CategorySession)))

	// Apply in the order the questions would be asked so ask_if gated
	// questions see their prerequisites.
	for _, q := range k.Questions {
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		delete(answers, q.ID)
		if err := s.ApplyAnswer(q.ID, raw); err != nil {
			return err
		}
	}
	for id := range answers {
		return fmt.Errorf("unknown question id in answers file: %s", id)
	}

	if outputFormat == "yaml" {
		out, err := yaml.Marshal(s.Snapshot())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	printRequirements(s.Requirements())
	printRecommendations(s.Recommend())
	return nil
}
