// pkg/manifest/loader.go
package manifest

import (
	"encoding/json"
	"os"
)

func LoadSkillPackage(path string) (*SkillPackage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pkg SkillPackage
	err = json.Unmarshal(data, &pkg)
	return &pkg, err
}

func LoadInteractionModel(path string) (*InteractionModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model InteractionModelFile
	err = json.Unmarshal(data, &model)
	return &model, err
}
