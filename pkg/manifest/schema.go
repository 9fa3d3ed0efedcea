// pkg/manifest/schema.go
package manifest

// SkillPackage is the top level of skill-package/skill.json.
type SkillPackage struct {
	Manifest Manifest `json:"manifest"`
}

type Manifest struct {
	PublishingInformation PublishingInformation  `json:"publishingInformation"`
	PrivacyAndCompliance  PrivacyAndCompliance   `json:"privacyAndCompliance"`
	APIs                  map[string]interface{} `json:"apis,omitempty"`
}

type PublishingInformation struct {
	Locales               map[string]LocaleInfo `json:"locales"`
	IsAvailableWorldwide  bool                  `json:"isAvailableWorldwide"`
	DistributionCountries []string              `json:"distributionCountries,omitempty"`
	Category              string                `json:"category,omitempty"`
}

type LocaleInfo struct {
	Name           string   `json:"name"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	ExamplePhrases []string `json:"examplePhrases"`
	Keywords       []string `json:"keywords"`
	SmallIconURI   string   `json:"smallIconUri"`
	LargeIconURI   string   `json:"largeIconUri"`
}

type PrivacyAndCompliance struct {
	AllowsPurchases   bool                     `json:"allowsPurchases"`
	UsesPersonalInfo  bool                     `json:"usesPersonalInfo"`
	IsChildDirected   bool                     `json:"isChildDirected"`
	ContainsAds       bool                     `json:"containsAds"`
	IsExportCompliant bool                     `json:"isExportCompliant"`
	Locales           map[string]PrivacyLocale `json:"locales"`
}

type PrivacyLocale struct {
	PrivacyPolicyURL string `json:"privacyPolicyUrl"`
	TermsOfUseURL    string `json:"termsOfUseUrl"`
}

// InteractionModelFile is the top level of an interaction model file such as
// skill-package/interactionModels/custom/en-US.json.
type InteractionModelFile struct {
	InteractionModel InteractionModel `json:"interactionModel"`
}

type InteractionModel struct {
	LanguageModel LanguageModel `json:"languageModel"`
}

type LanguageModel struct {
	InvocationName string     `json:"invocationName"`
	Intents        []Intent   `json:"intents"`
	Types          []SlotType `json:"types,omitempty"`
}

type Intent struct {
	Name    string       `json:"name"`
	Slots   []IntentSlot `json:"slots,omitempty"`
	Samples []string     `json:"samples,omitempty"`
}

type IntentSlot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type SlotType struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values,omitempty"`
}
