// pkg/manifest/manifest.go
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"discogs-explorer/internal/common/validation"
)

const (
	ManifestPath         = "skill-package/skill.json"
	InteractionModelPath = "skill-package/interactionModels/custom/en-US.json"

	Locale          = "en-US"
	PlaceholderHost = "example.com"

	builtinIntentPrefix = "AMAZON."
	minCustomIntents    = 3
)

//go:embed skill.schema.json
var skillSchema []byte

// Report collects checklist findings. Issues block publishing, warnings do not.
type Report struct {
	Issues   []string
	Warnings []string
}

func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) issue(format string, args ...interface{}) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Checker runs the pre-publishing checklist over a skill package.
type Checker struct {
	schema         *gojsonschema.Schema
	handledIntents []string
}

// NewChecker builds a checker. handledIntents are the custom intents the
// skill backend implements; model intents outside that list are reported.
func NewChecker(handledIntents []string) (*Checker, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(skillSchema))
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	return &Checker{schema: schema, handledIntents: handledIntents}, nil
}

// Check reads the manifest and the en-US interaction model below root.
func (c *Checker) Check(root string) *Report {
	report := &Report{}

	data, err := os.ReadFile(filepath.Join(root, ManifestPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.issue("skill.json not found")
		} else {
			report.issue("cannot read skill.json: %v", err)
		}
		return report
	}
	c.CheckManifest(data, report)

	data, err = os.ReadFile(filepath.Join(root, InteractionModelPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.issue("Interaction model not found")
		} else {
			report.issue("cannot read interaction model: %v", err)
		}
		return report
	}
	c.CheckInteractionModel(data, report)

	return report
}

// CheckManifest validates the shape of skill.json and then the en-US
// publishing and privacy fields.
func (c *Checker) CheckManifest(data []byte, report *Report) {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		report.issue("skill.json is not valid JSON: %v", err)
		return
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			report.issue("skill.json %s: %s", desc.Field(), desc.Description())
		}
		return
	}

	var pkg SkillPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		report.issue("skill.json cannot be decoded: %v", err)
		return
	}

	info := pkg.Manifest.PublishingInformation.Locales[Locale]
	required := []struct {
		field   string
		present bool
	}{
		{"name", strings.TrimSpace(info.Name) != ""},
		{"summary", strings.TrimSpace(info.Summary) != ""},
		{"description", strings.TrimSpace(info.Description) != ""},
		{"examplePhrases", len(info.ExamplePhrases) > 0},
		{"keywords", len(info.Keywords) > 0},
	}
	for _, f := range required {
		if !f.present {
			report.issue("Missing required field: %s", f.field)
		}
	}

	privacy := pkg.Manifest.PrivacyAndCompliance.Locales[Locale]
	urls := []struct {
		label string
		value string
	}{
		{"Large icon", info.LargeIconURI},
		{"Small icon", info.SmallIconURI},
		{"Privacy policy", privacy.PrivacyPolicyURL},
		{"Terms of use", privacy.TermsOfUseURL},
	}
	for _, u := range urls {
		if isPlaceholder(u.value) {
			report.issue("%s URL is placeholder or missing", u.label)
		}
	}
	for _, u := range urls {
		if !isPlaceholder(u.value) && !validation.IsSecureURL(u.value) {
			report.issue("%s URL must use HTTPS: %s", u.label, u.value)
		}
	}
}

// CheckInteractionModel reports thin or mismatched custom intent sets.
func (c *Checker) CheckInteractionModel(data []byte, report *Report) {
	var model InteractionModelFile
	if err := json.Unmarshal(data, &model); err != nil {
		report.issue("Interaction model is not valid JSON: %v", err)
		return
	}

	custom := CustomIntents(model)
	if len(custom) < minCustomIntents {
		report.warn("Consider adding more custom intents for better functionality")
	}

	if c.handledIntents == nil {
		return
	}
	handled := make(map[string]bool, len(c.handledIntents))
	for _, name := range c.handledIntents {
		handled[name] = true
	}
	declared := make(map[string]bool, len(custom))
	for _, name := range custom {
		declared[name] = true
		if !handled[name] {
			report.warn("Intent %s has no handler and will be reflected back", name)
		}
	}
	for _, name := range c.handledIntents {
		if !declared[name] {
			report.warn("Intent %s is handled but missing from the interaction model", name)
		}
	}
}

// CustomIntents returns the non built-in intent names of a model in order.
func CustomIntents(model InteractionModelFile) []string {
	var names []string
	for _, intent := range model.InteractionModel.LanguageModel.Intents {
		if !strings.HasPrefix(intent.Name, builtinIntentPrefix) {
			names = append(names, intent.Name)
		}
	}
	return names
}

func isPlaceholder(raw string) bool {
	return strings.TrimSpace(raw) == "" || strings.Contains(raw, PlaceholderHost)
}
