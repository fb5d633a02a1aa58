package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/logging"
	"github.com/JasperK04/KTP/internal/matcher"
	"github.com/JasperK04/KTP/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var consultCmd = &cobra.Command{
	Use:   "consult",
	Short: "Start an interactive consultation",
	Long: `Runs a question-and-answer consultation on the terminal.

Answer each question, or type:
  skip  - skip a question you cannot answer
  why   - show why the question is being asked
  done  - stop answering and see the recommendations
  quit  - abort without recommendations`,
	RunE: runConsult,
}

func runConsult(cmd *cobra.Command, args []string) error {
	k, err := loadKB()
	if err != nil {
		return err
	}

	s := session.New(k, session.WithLogger(logging.Named(logger, logging.CategorySession)))
	in := bufio.NewScanner(os.Stdin)

	fmt.Println(titleStyle.Render("ktp - fastening advisor"))
	fmt.Println(mutedStyle.Render("Answer the questions below. Type 'skip', 'why', 'done' or 'quit'."))
	fmt.Println()

	for q := s.NextQuestion(); q != nil; q = s.NextQuestion() {
		done, quit := askQuestion(s, q, in)
		if quit {
			fmt.Println(mutedStyle.Render("Consultation aborted."))
			return nil
		}
		if done {
			break
		}
	}

	printRequirements(s.Requirements())
	printRecommendations(s.Recommend())

	if cfg.Session.SaveSnapshots {
		path, err := writeSnapshot(s)
		if err != nil {
			fmt.Println(warningStyle.Render("Warning: ") + "could not save debug state: " + err.Error())
		} else {
			fmt.Println(mutedStyle.Render("Debug state saved to " + path))
		}
	}
	return nil
}

// askQuestion prompts for one answer, retrying on invalid input. The two
// return flags report "stop asking" and "abort" respectively.
func askQuestion(s *session.Session, q *kb.Question, in *bufio.Scanner) (done, quit bool) {
	for {
		fmt.Println(questionStyle.Render(q.Text))
		if q.Kind == kb.AnswerChoice {
			for i, c := range q.Choices {
				fmt.Printf("  %d) %s\n", i+1, c)
			}
		} else {
			fmt.Println(mutedStyle.Render("  yes / no"))
		}
		fmt.Print(promptStyle.Render("> "))

		if !in.Scan() {
			return true, false
		}
		line := strings.TrimSpace(in.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return false, true
		case "done":
			return true, false
		case "skip":
			s.Skip(q.ID)
			fmt.Println(mutedStyle.Render("Skipped."))
			fmt.Println()
			return false, false
		case "why", "?":
			for _, reason := range s.Explain(q.ID) {
				fmt.Println(mutedStyle.Render("  " + reason))
			}
			fmt.Println()
			continue
		}

		// A numeric answer selects from the choice list.
		answer := line
		if q.Kind == kb.AnswerChoice {
			if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Choices) {
				answer = q.Choices[n-1]
			}
		}

		if err := s.ApplyAnswer(q.ID, answer); err != nil {
			var invalid *session.InvalidAnswerError
			if errors.As(err, &invalid) {
				fmt.Println(warningStyle.Render("Invalid answer: ") + invalid.Reason)
				fmt.Println()
				continue
			}
			fmt.Println(errorStyle.Render("Error: ") + err.Error())
			continue
		}
		fmt.Println()
		return false, false
	}
}

func printRequirements(snap facts.Snapshot) {
	fmt.Println(titleStyle.Render("Derived requirements"))
	fmt.Printf("  tensile strength:    %s\n", orNone(string(snap.MinTensileStrength)))
	fmt.Printf("  shear strength:      %s\n", orNone(string(snap.MinShearStrength)))
	fmt.Printf("  water resistance:    %s\n", orNone(string(snap.MinWaterResistance)))
	fmt.Printf("  temp resistance:     %s\n", orNone(string(snap.MinTemperatureResistance)))
	fmt.Printf("  UV resistance:       %s\n", orNone(string(snap.MinUVResistance)))
	fmt.Printf("  vibration resist.:   %s\n", orNone(string(snap.MinVibrationResistance)))
	fmt.Printf("  chemical resist.:    %s\n", orNone(string(snap.MinChemicalResistance)))
	if snap.AllowedCategories != nil {
		fmt.Printf("  allowed categories:  %s\n", joinCategories(snap.AllowedCategories))
	}
	if len(snap.ExcludedCategories) > 0 {
		fmt.Printf("  excluded categories: %s\n", joinCategories(snap.ExcludedCategories))
	}
	if len(snap.ExcludedItems) > 0 {
		fmt.Printf("  excluded methods:    %s\n", strings.Join(snap.ExcludedItems, ", "))
	}
	if snap.RequireFlexibility {
		fmt.Println("  flexible bond required")
	}
	fmt.Println()
}

func printRecommendations(recs []matcher.Recommendation) {
	if len(recs) == 0 {
		fmt.Println(warningStyle.Render("No fastening method satisfies every requirement."))
		fmt.Println(mutedStyle.Render("Consider relaxing a constraint and consulting again."))
		return
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Recommended methods (%d)", len(recs))))
	for _, r := range recs {
		f := r.Fastener
		var b strings.Builder
		b.WriteString(successStyle.Render(f.Name))
		b.WriteString("  ")
		b.WriteString(badgeStyle.Render(string(f.Category)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("tensile %s, shear %s, %s, %s",
			f.TensileStrength, f.ShearStrength, f.Rigidity, f.Permanence))
		if f.CuringTime != "" && f.CuringTime != "immediate" {
			b.WriteString(", cures in " + f.CuringTime)
		}
		for _, s := range r.Suggestions {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("tip: " + s))
		}
		fmt.Println(recommendationStyle.Render(b.String()))
		fmt.Println()
	}
}

// writeSnapshot persists the full session state for offline inspection.
func writeSnapshot(s *session.Session) (string, error) {
	snap := s.Snapshot()
	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", err
	}

	dir := cfg.Session.SnapshotDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("session_%s_%s.yaml", snap.Timestamp.Format("20060102_150405"), snap.SessionID[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func orNone(s string) string {
	if s == "" || s == "none" {
		return mutedStyle.Render("none")
	}
	return s
}

func joinCategories(cats []kb.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
