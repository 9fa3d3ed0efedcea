// cmd/tools/intent-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"discogs-explorer/pkg/manifest"
)

// IntentData holds data for templates
type IntentData struct {
	IntentName  string
	PackageName string
	Dir         string
	Title       string
	Slot        string
	SlotConst   string
	PromptConst string
}

// newIntentData derives package, directory and constant names from an
// interaction model intent. Only the first slot is wired.
func newIntentData(intent manifest.Intent) IntentData {
	base := strings.TrimSuffix(intent.Name, "Intent")
	words := splitWords(base)

	data := IntentData{
		IntentName:  intent.Name,
		PackageName: strings.ToLower(strings.Join(words, "")),
		Dir:         strings.ToLower(strings.Join(words, "-")),
		Title:       strings.Join(words, " "),
	}
	if len(intent.Slots) > 0 && intent.Slots[0].Name != "" {
		slot := intent.Slots[0].Name
		data.Slot = slot
		data.SlotConst = "Slot" + upperFirst(slot)
		data.PromptConst = "Prompt" + upperFirst(slot)
	}
	return data
}

// splitWords breaks a CamelCase name into words, keeping acronyms together:
// "TrackList" -> [Track List], "LPTracks" -> [LP Tracks].
func splitWords(name string) []string {
	runes := []rune(name)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// render executes every template and gofmt's the result.
func render(data IntentData) (map[string][]byte, error) {
	templates := map[string]string{
		"config.go":       configTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}

	files := make(map[string][]byte, len(templates))
	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Parse(tmplStr)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", filename, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", filename, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", filename, err)
		}
		files[filename] = src
	}
	return files, nil
}

// writeScaffold writes the rendered files into dir. An existing directory is
// left alone unless force is set.
func writeScaffold(dir string, files map[string][]byte, force bool) error {
	if _, err := os.Stat(dir); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), src, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func findIntent(model *manifest.InteractionModelFile, name string) (manifest.Intent, bool) {
	for _, intent := range model.InteractionModel.LanguageModel.Intents {
		if intent.Name == name {
			return intent, true
		}
	}
	return manifest.Intent{}, false
}

func main() {
	intentName := flag.String("intent", "", "Custom intent from the interaction model (e.g., TrackListIntent)")
	modelPath := flag.String("model", manifest.InteractionModelPath, "Path to the interaction model JSON file")
	outputDir := flag.String("output", "./internal/handlers/catalog/", "Output directory for the generated handler package")
	force := flag.Bool("force", false, "Overwrite an existing handler directory")
	flag.Parse()

	if *intentName == "" {
		fmt.Println("Usage: intent-generator -intent <name> [-model <path>] [-output <dir>] [-force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/intent-generator -intent TrackListIntent")
		os.Exit(1)
	}
	if strings.HasPrefix(*intentName, "AMAZON.") {
		fmt.Printf("%s is a built-in intent and is served by internal/handlers/builtin\n", *intentName)
		os.Exit(1)
	}

	model, err := manifest.LoadInteractionModel(*modelPath)
	if err != nil {
		fmt.Printf("Error loading interaction model from %s: %v\n", *modelPath, err)
		os.Exit(1)
	}

	intent, ok := findIntent(model, *intentName)
	if !ok {
		fmt.Printf("Intent '%s' not found in %s\n", *intentName, *modelPath)
		os.Exit(1)
	}

	data := newIntentData(intent)
	files, err := render(data)
	if err != nil {
		fmt.Printf("Error rendering scaffold: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(*outputDir, data.Dir)
	if err := writeScaffold(dir, files, *force); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for name := range files {
		fmt.Printf("Generated %s\n", filepath.Join(dir, name))
	}
	fmt.Printf("\nHandler scaffold generated at: %s\n", dir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Query the catalog in handler.go\n")
	fmt.Printf("  2. Extend handler_test.go with catalog mocks\n")
	fmt.Printf("  3. Register the handler in internal/handlers/registry.go and add it to CustomIntents\n")
	fmt.Printf("  4. Add skill.intents.%s.enabled to configs/config.yaml\n", data.IntentName)
}
