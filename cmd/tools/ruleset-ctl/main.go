// cmd/tools/ruleset-ctl/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lead-dispatch-workers/internal/dispatch/classifier"
	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/dispatch/normalizer"
	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	classifyCmd := flag.NewFlagSet("classify", flag.ExitOnError)

	// Validate command flags
	validatePath := validateCmd.String("path", "configs/ruleset.json", "Path to ruleset file")

	// Export command flags
	exportOut := exportCmd.String("out", "configs/ruleset.json", "Output path for the built-in ruleset")

	// Classify command flags
	classifyPath := classifyCmd.String("path", "", "Path to ruleset file (empty = built-in)")
	formSource := classifyCmd.String("source", "", "Form source identifier")
	service := classifyCmd.String("service", "", "Service requested text")
	notes := classifyCmd.String("notes", "", "Free-text notes")
	postalCode := classifyCmd.String("zip", "", "Postal code to resolve")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRuleset(*validatePath); err != nil {
			fmt.Printf("Ruleset validation failed: %v\n", err)
			os.Exit(1)
		}

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRuleset(*exportOut); err != nil {
			fmt.Printf("Error exporting ruleset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote built-in ruleset to %s\n", *exportOut)

	case "classify":
		classifyCmd.Parse(os.Args[2:])
		if err := classifyLead(*classifyPath, *formSource, *service, *notes, *postalCode); err != nil {
			fmt.Printf("Error classifying lead: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func validateRuleset(path string) error {
	rules, err := registry.LoadRuleset(path)
	if err != nil {
		return err
	}

	fmt.Printf("Ruleset validation passed.\n")
	fmt.Printf("  version:          %s\n", rules.Version)
	fmt.Printf("  categories:       %d\n", len(rules.CategoryServices))
	fmt.Printf("  field labels:     %d\n", len(rules.FieldLabels))
	fmt.Printf("  form sources:     %d\n", len(rules.FormSources))
	fmt.Printf("  service phrases:  %d\n", len(rules.ServicePhrases))
	fmt.Printf("  keywords:         %d\n", len(rules.Keywords))
	fmt.Printf("  postal areas:     %d\n", len(rules.PostalAreas))
	return nil
}

func exportRuleset(path string) error {
	rules := registry.DefaultRuleset()

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ruleset: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ruleset file: %w", err)
	}
	return nil
}

// classifyLead runs a synthetic lead through normalization,
// classification, and geography resolution so ruleset changes can be
// checked without a running worker.
func classifyLead(path, formSource, service, notes, postalCode string) error {
	var rules *registry.Ruleset
	var err error
	if path != "" {
		rules, err = registry.LoadRuleset(path)
		if err != nil {
			return err
		}
	} else {
		rules = registry.DefaultRuleset()
	}

	raw := map[string]string{}
	if formSource != "" {
		raw[models.FieldFormSource] = formSource
	}
	if service != "" {
		raw[models.FieldServiceRequested] = service
	}
	if notes != "" {
		raw[models.FieldNotes] = notes
	}
	if postalCode != "" {
		raw[models.FieldPostalCode] = postalCode
	}

	req, unmapped := normalizer.New(rules).Normalize(raw)
	result, tier := classifier.New(rules).Classify(req)
	result.CoverageArea = geo.NewDatasetResolver(rules).Resolve(req.Get(models.FieldPostalCode))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	fmt.Printf("tier: %s\n", tier)
	if len(unmapped) > 0 {
		fmt.Printf("unmapped labels: %v\n", unmapped)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: ruleset-ctl <command> [flags]

Commands:
  validate Validate a ruleset file against the schema and semantic checks
  export   Write the built-in ruleset to a file as a starting point
  classify Run a synthetic lead through the classifier for debugging
  help     Show this help message

Examples:
  ruleset-ctl validate -path configs/ruleset.json
  ruleset-ctl export -out configs/ruleset.json
  ruleset-ctl classify -source emergency_tow_request -notes "engine died, need a tow" -zip 33149

Use 'ruleset-ctl <command> -h' for more information about a command.
`)
}
