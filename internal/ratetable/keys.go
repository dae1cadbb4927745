package ratetable

import (
	"strings"

	"settlement-quote/internal/model"
)

// Factor is one risk attribute of an LCP form and the rule turning its value into a table key.
type Factor struct {
	Field  string
	Values []string
	key    func(v string) string
}

func (f Factor) Key(value string) string {
	return f.key(normalize(value))
}

var weightKeys = map[string]string{
	"underweight": "underweight",
	"normal":      "normal-weight",
	"overweight":  "overweight",
	"obese":       "obese",
}

// Factors lists every risk attribute in key order.
var Factors = []Factor{
	{Field: "profileData.ageRange", Values: []string{"18-25", "26-35", "36-45", "46-55", "56-65", "66-75", "76-85"},
		key: prefixed("age-")},
	{Field: "profileData.gender", Values: []string{"female", "male"}, key: prefixed("gender-")},
	{Field: "profileData.bodyFrame", Values: []string{"small", "medium", "large"}, key: prefixed("build-")},
	{Field: "lifestyleData.weight", Values: []string{"underweight", "normal", "overweight", "obese"},
		key: func(v string) string {
			if k, ok := weightKeys[v]; ok {
				return k
			}
			return "weight-" + v
		}},
	{Field: "healthData.smoke", Values: []string{"no", "yes"}, key: prefixed("smoke-")},
	{Field: "healthData.health", Values: []string{"excellent", "great", "good", "fair", "poor"}, key: prefixed("health-")},
	{Field: "healthData.cardiac", Values: []string{"normal", "minor", "major"}, key: prefixed("cardiac-")},
}

func prefixed(p string) func(string) string {
	return func(v string) string { return p + v }
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// DeriveKeys maps each risk attribute to exactly one table key, in Factors order.
// Unrecognized values still produce a key; LookupRate rejects it.
// Callers must have checked that all three sections are present.
func DeriveKeys(profile *model.LCPProfileData, lifestyle *model.LCPLifestyleData, health *model.LCPHealthData) []string {
	values := FieldValues(profile, lifestyle, health)
	keys := make([]string, len(Factors))
	for i, f := range Factors {
		keys[i] = f.Key(values[i])
	}
	return keys
}

// FieldValues returns the raw attribute values in Factors order.
func FieldValues(profile *model.LCPProfileData, lifestyle *model.LCPLifestyleData, health *model.LCPHealthData) []string {
	return []string{
		profile.AgeRange,
		profile.Gender,
		profile.BodyFrame,
		lifestyle.Weight,
		health.Smoke,
		health.Health,
		health.Cardiac,
	}
}
