package scheduling

import (
	"strings"

	"chairside/models"
)

// Classifier decides whether a service needs a post-treatment processing gap.
type Classifier interface {
	IsChemical(svc models.Service) bool
}

// chemicalKeywords is the fallback matcher for legacy records that carry no
// explicit chemical flag. Matched as substrings against name and category.
var chemicalKeywords = []string{
	"tint", "colour", "color", "bleach", "toner", "gloss", "highlights",
	"balayage", "foils", "perm", "relaxer", "keratin", "chemical",
	"straightening",
}

// FlagClassifier trusts only the explicit service flag.
type FlagClassifier struct{}

func (FlagClassifier) IsChemical(svc models.Service) bool {
	return svc.Chemical
}

// KeywordClassifier treats the explicit flag as authoritative and falls back
// to keyword matching for untagged records. It is the default classifier;
// swapping it for FlagClassifier drops the legacy heuristic entirely.
type KeywordClassifier struct{}

func (KeywordClassifier) IsChemical(svc models.Service) bool {
	if svc.Chemical {
		return true
	}

	category := strings.ToLower(svc.Category)
	if strings.Contains(category, "treat") {
		return true
	}

	name := strings.ToLower(svc.Name)
	for _, kw := range chemicalKeywords {
		if strings.Contains(name, kw) || strings.Contains(category, kw) {
			return true
		}
	}
	return false
}
