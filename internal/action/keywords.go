package action

import "strings"

// Keyword lists are matched as plain substrings of the normalized utterance,
// so "all" also matches "install" and "get" matches "together".
var (
	aggregateKeywords = []string{"all", "every", "which products", "what products"}
	featureKeywords   = []string{"feature", "module"}

	instituteKeywords = []string{InstituteSchool, InstituteCollege, InstituteUniversity}

	careerKeywords   = []string{"job", "vacancy", "hiring", "career", "recruitment", "employment"}
	purchaseKeywords = []string{"buy", "purchase", "get", "acquire", "obtain", "order"}
	supportKeywords  = []string{"tech support", "technical support", "fix my", "repair", "not working", "broken"}
	brandKeywords    = []string{"ednect", "desalite", "transtrack", "icebox", "vasp"}

	educationKeywords = []string{"school", "college", "education", "student", "institute"}
	logisticsKeywords = []string{"transport", "logistics", "shipping", "delivery", "carrier"}
	storageKeywords   = []string{"cold storage", "warehouse", "storage", "cold chain", "temperature"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// firstOf returns the first keyword, in list order, contained in text.
func firstOf(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
