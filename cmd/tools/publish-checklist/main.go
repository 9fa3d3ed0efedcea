// cmd/tools/publish-checklist/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"discogs-explorer/internal/handlers"
	"discogs-explorer/pkg/manifest"
)

func main() {
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	intentsCmd := flag.NewFlagSet("intents", flag.ExitOnError)

	checkRoot := checkCmd.String("root", ".", "Directory containing skill-package/")
	intentsRoot := intentsCmd.String("root", ".", "Directory containing skill-package/")

	if len(os.Args) < 2 {
		os.Args = append(os.Args, "check")
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		os.Exit(runCheck(*checkRoot))

	case "intents":
		intentsCmd.Parse(os.Args[2:])
		if err := listIntents(*intentsRoot); err != nil {
			fmt.Printf("Error reading interaction model: %v\n", err)
			os.Exit(1)
		}

	case "help":
		help()

	default:
		help()
		os.Exit(1)
	}
}

func runCheck(root string) int {
	fmt.Println("Validating Discogs Explorer skill package for publishing...")
	fmt.Println(strings.Repeat("=", 50))

	checker, err := manifest.NewChecker(handlers.CustomIntents)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	report := checker.Check(root)

	fmt.Println()
	fmt.Println("VALIDATION RESULTS")
	fmt.Println(strings.Repeat("=", 50))

	if len(report.Issues) > 0 {
		fmt.Println("CRITICAL ISSUES (must fix before publishing):")
		for _, issue := range report.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Println()
		fmt.Println("WARNINGS (recommended to fix):")
		for _, warning := range report.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}

	switch {
	case report.OK() && len(report.Warnings) == 0:
		fmt.Println("All checks passed. The skill is ready for publishing.")
	case report.OK():
		fmt.Println("No critical issues found. Address warnings if possible.")
	default:
		fmt.Printf("\nFound %d critical issues that must be fixed before publishing.\n", len(report.Issues))
		return 1
	}
	return 0
}

func listIntents(root string) error {
	model, err := manifest.LoadInteractionModel(filepath.Join(root, manifest.InteractionModelPath))
	if err != nil {
		return err
	}

	handled := make(map[string]bool, len(handlers.CustomIntents))
	for _, name := range handlers.CustomIntents {
		handled[name] = true
	}

	fmt.Printf("Invocation name: %s\n", model.InteractionModel.LanguageModel.InvocationName)
	for _, name := range manifest.CustomIntents(*model) {
		status := "handled"
		if !handled[name] {
			status = "reflected"
		}
		fmt.Printf("  %-24s %s\n", name, status)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: publish-checklist <command> [flags]

Commands:
  check    Validate skill-package/ before submitting for certification (default)
  intents  List the custom intents of the en-US interaction model
  help     Show this help message

Examples:
  publish-checklist check -root .
  publish-checklist intents -root .

Exit status is 1 when any critical issue is found.
`)
}
