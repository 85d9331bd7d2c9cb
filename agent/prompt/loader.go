package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/classifier.txt
	classifierRaw string

	//go:embed template/generator.txt
	generatorRaw string
)

// PromptSet holds the embedded system prompts.
type PromptSet struct {
	Classifier string
	Generator  string
}

// LoadPromptSet returns the trimmed system prompts. Safe to call
// concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Classifier: strings.TrimSpace(classifierRaw),
		Generator:  strings.TrimSpace(generatorRaw),
	}
}
