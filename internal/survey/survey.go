// Package survey reads health questionnaire answers and sanitizes them into
// the typed response the score engine consumes.
package survey

import (
	"crypto/sha256"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Raw holds answers exactly as a form or file supplied them. Any field may be
// missing, a number, or a string.
type Raw struct {
	ExerciseDuration  any `json:"exerciseDuration" yaml:"exerciseDuration"`
	ExerciseType      any `json:"exerciseType" yaml:"exerciseType"`
	SleepHours        any `json:"sleepHours" yaml:"sleepHours"`
	WaterGlasses      any `json:"waterGlasses" yaml:"waterGlasses"`
	JunkFoodFrequency any `json:"junkFoodFrequency" yaml:"junkFoodFrequency"`
	Mood              any `json:"mood" yaml:"mood"`
	StressLevel       any `json:"stressLevel" yaml:"stressLevel"`
	ScreenTimeHours   any `json:"screenTimeHours" yaml:"screenTimeHours"`
	SystolicBP        any `json:"systolicBP" yaml:"systolicBP"`
}

// File is a loaded survey file with its hash.
type File struct {
	FilePath string
	Hash     string
	Answers  Raw
}

// Load reads a JSON or YAML survey file and computes its SHA-256 hash.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("survey.Load: %w", err)
	}
	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("survey.Load: %s: %w", path, err)
	}
	return &File{
		FilePath: path,
		Hash:     Hash(data),
		Answers:  raw,
	}, nil
}

// bareBucket matches an unquoted bucket label such as `junkFoodFrequency: >5`,
// which YAML would otherwise read as an empty block scalar header.
var bareBucket = regexp.MustCompile(`(?m)^([ \t]*(?:exerciseDuration|junkFoodFrequency)[ \t]*:[ \t]*)([>|][0-9+]+)[ \t]*\r?$`)

// Parse decodes survey answers from JSON or YAML. Unquoted bucket labels
// starting with > or | are read as the label.
func Parse(data []byte) (Raw, error) {
	var raw Raw
	data = bareBucket.ReplaceAll(data, []byte(`${1}"${2}"`))
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Raw{}, fmt.Errorf("parse survey: %w", err)
	}
	return raw, nil
}

// Hash returns the content hash recorded in reports.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("sha256:%x", h)
}
