package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ai-interview-lab/internal/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the question catalog from a JSON or YAML file",
	Long:  "Reads a list of questions (.json, .yaml or .yml), validates every entry and atomically replaces the catalog. Nothing is written when any entry is invalid.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the file without writing the catalog")
	rootCmd.AddCommand(importCmd)
}

func parseQuestions(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var qs []domain.Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &qs)
	default:
		err = json.Unmarshal(data, &qs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if qs == nil {
		qs = []domain.Question{}
	}
	return qs, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	qs, err := parseQuestions(args[0])
	if err != nil {
		return err
	}

	a, closeApp, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp()

	out := cmd.OutOrStdout()
	if importDryRun {
		for i, q := range qs {
			if err := q.Validate(); err != nil {
				return fmt.Errorf("question #%d: %w", i, err)
			}
		}
		_, _ = fmt.Fprintf(out, "Validated %d questions (dry run)\n", len(qs))
		return nil
	}
	if err := a.ReplaceCatalog(cmd.Context(), qs); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Imported %d questions into %s\n", len(qs), a.Store.Questions.Name())
	return nil
}
