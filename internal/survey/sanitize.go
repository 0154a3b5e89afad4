package survey

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/IT-FEST-2025/diagnify/internal/health"
)

// Defaults substituted for missing or unusable answers.
var Defaults = health.Response{
	ExerciseDuration:  health.DurationNone,
	SleepHours:        0,
	WaterGlasses:      0,
	JunkFoodFrequency: health.FrequencyNone,
	Mood:              1,
	StressLevel:       1,
	ScreenTimeHours:   0,
	SystolicBP:        120,
}

// Substitution reasons.
const (
	ReasonMissing    = "missing"
	ReasonInvalid    = "invalid"
	ReasonOutOfRange = "out_of_range"
)

// Substitution records an answer replaced during sanitization.
type Substitution struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Used   string `json:"used"`
}

// largest magnitude kept when truncating to int
const maxMagnitude = 1e9

// Sanitize maps every answer to a usable value. Missing or non-numeric
// answers take their default, unknown buckets become "0", and mood and stress
// are clamped to 1..5. It never fails; the returned substitutions describe
// what was replaced.
func Sanitize(raw Raw) (health.Response, []Substitution) {
	s := &sanitizer{}
	r := health.Response{
		ExerciseDuration:  health.DurationBucket(s.bucket("exerciseDuration", raw.ExerciseDuration, string(Defaults.ExerciseDuration), durationValid)),
		ExerciseType:      label(raw.ExerciseType),
		SleepHours:        s.integer("sleepHours", raw.SleepHours, Defaults.SleepHours),
		WaterGlasses:      s.integer("waterGlasses", raw.WaterGlasses, Defaults.WaterGlasses),
		JunkFoodFrequency: health.FrequencyBucket(s.bucket("junkFoodFrequency", raw.JunkFoodFrequency, string(Defaults.JunkFoodFrequency), frequencyValid)),
		Mood:              s.scale("mood", raw.Mood, Defaults.Mood),
		StressLevel:       s.scale("stressLevel", raw.StressLevel, Defaults.StressLevel),
		ScreenTimeHours:   s.decimal("screenTimeHours", raw.ScreenTimeHours, Defaults.ScreenTimeHours),
		SystolicBP:        s.integer("systolicBP", raw.SystolicBP, Defaults.SystolicBP),
	}
	return r, s.subs
}

type sanitizer struct {
	subs []Substitution
}

func (s *sanitizer) note(field string, v any, used string) {
	reason := ReasonInvalid
	if isBlank(v) {
		reason = ReasonMissing
	}
	s.subs = append(s.subs, Substitution{Field: field, Reason: reason, Used: used})
}

func (s *sanitizer) integer(field string, v any, def int) int {
	f, ok := toNumber(v)
	if !ok {
		s.note(field, v, strconv.Itoa(def))
		return def
	}
	return int(math.Max(-maxMagnitude, math.Min(maxMagnitude, math.Trunc(f))))
}

func (s *sanitizer) decimal(field string, v any, def float64) float64 {
	f, ok := toNumber(v)
	if !ok {
		s.note(field, v, strconv.FormatFloat(def, 'f', -1, 64))
		return def
	}
	return f
}

func (s *sanitizer) scale(field string, v any, def int) int {
	n := s.integer(field, v, def)
	clamped := min(max(n, 1), 5)
	if clamped != n {
		s.subs = append(s.subs, Substitution{Field: field, Reason: ReasonOutOfRange, Used: strconv.Itoa(clamped)})
	}
	return clamped
}

func (s *sanitizer) bucket(field string, v any, def string, valid func(string) bool) string {
	b := bucketLabel(v)
	if !valid(b) {
		s.note(field, v, def)
		return def
	}
	return b
}

func durationValid(b string) bool  { return health.DurationBucket(b).Valid() }
func frequencyValid(b string) bool { return health.FrequencyBucket(b).Valid() }

// toNumber accepts Go numerics, json.Number and numeric strings.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// bucketLabel renders a bucket answer as its label. Whole numbers are
// accepted for the numeric buckets.
func bucketLabel(v any) string {
	switch b := v.(type) {
	case string:
		return strings.TrimSpace(b)
	case nil:
		return ""
	}
	f, ok := toNumber(v)
	if !ok || f != math.Trunc(f) {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

func label(v any) string {
	switch l := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(l)
	default:
		return strings.TrimSpace(fmt.Sprint(l))
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
