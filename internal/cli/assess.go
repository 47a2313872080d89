package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/scoring"
	"github.com/triageai/triage/internal/validate"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a triage assessment (non-interactive)",
	Long: `Score a set of symptoms and print the assessment. Useful for
scripting and for smoke-testing the scoring engine without the wizard.

Exit codes:
  0 — Non-urgent or Semi-urgent
  1 — Urgent
  2 — Critical

Examples:
  triage assess --age 34 --gender male --symptom "Chest Pain" --symptom "Difficulty Breathing"
  triage assess --age 70 --gender female --symptom Fracture --format json`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().Int("age", 0, "patient age")
	assessCmd.Flags().String("gender", "", "patient gender: male, female, other")
	assessCmd.Flags().String("cause", "", "mechanism of injury")
	assessCmd.Flags().StringSlice("symptom", nil, "symptom name from the catalog (repeatable)")
	assessCmd.Flags().StringP("format", "f", "text", "output format: text, json")
	assessCmd.Flags().Bool("list", false, "list the symptom catalog and exit")
}

func runAssess(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		return printCatalog()
	}

	age, _ := cmd.Flags().GetInt("age")
	if _, err := validate.Age(fmt.Sprintf("%d", age)); err != nil {
		return err
	}

	genderFlag, _ := cmd.Flags().GetString("gender")
	gender, err := parseGender(genderFlag)
	if err != nil {
		return err
	}
	if err := validate.Gender(gender); err != nil {
		return err
	}

	names, _ := cmd.Flags().GetStringSlice("symptom")
	symptoms, err := resolveSymptoms(names)
	if err != nil {
		return err
	}

	a, err := scoring.Assess(symptoms)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return err
		}
	} else {
		printAssessment(a)
	}

	// Set exit code
	switch a.SeverityLevel {
	case scoring.LevelCritical:
		os.Exit(2)
	case scoring.LevelUrgent:
		os.Exit(1)
	}
	return nil
}

func parseGender(s string) (model.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return model.GenderMale, nil
	case "female":
		return model.GenderFemale, nil
	case "other":
		return model.GenderOther, nil
	case "":
		return model.GenderUnset, nil
	default:
		return model.GenderUnset, fmt.Errorf("unknown gender %q", s)
	}
}

func resolveSymptoms(names []string) ([]model.Symptom, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one --symptom is required")
	}
	catalog := scoring.CatalogSymptoms()
	byName := make(map[string]model.Symptom, len(catalog))
	for _, s := range catalog {
		byName[strings.ToLower(s.Name)] = s
	}

	out := make([]model.Symptom, 0, len(names))
	for _, name := range names {
		s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown symptom %q (use --list to see the catalog)", name)
		}
		out = append(out, s)
	}
	return out, nil
}

func printAssessment(a *model.Assessment) {
	fmt.Printf("Severity:    %s\n", a.SeverityLevel)
	fmt.Printf("Treat within: %s\n", a.EstimatedTimeToTreatment)
	fmt.Printf("Confidence:  %.0f%%\n\n", a.ConfidenceScore*100)
	fmt.Println("Recommended actions:")
	for _, action := range a.RecommendedActions {
		fmt.Printf("  - %s\n", action)
	}
}

func printCatalog() error {
	for _, e := range scoring.Catalog {
		fmt.Printf("  %-25s severity %d  %s\n", e.Name, e.Severity, e.Description)
	}
	return nil
}
