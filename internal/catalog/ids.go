package catalog

import "github.com/vasptech/vaspx-actions/internal/product"

// ID names a canned reply in the catalog.
type ID string

// Fixed reply identifiers. Comparison and suggestion replies are addressed
// through ComparisonID and SuggestionID.
const (
	Overview ID = "compare.overview"

	IntelligentSchoolPair   ID = "intelligent.school_pair"
	IntelligentMultiProduct ID = "intelligent.multi_product"
	IntelligentFeatures     ID = "intelligent.features"

	FallbackCareer     ID = "fallback.career"
	FallbackPurchase   ID = "fallback.purchase"
	FallbackOutOfScope ID = "fallback.out_of_scope"
	FallbackProducts   ID = "fallback.products"
	FallbackMenu       ID = "fallback.menu"

	RecommendEducation   ID = "recommend.education"
	RecommendLogistics   ID = "recommend.logistics"
	RecommendStorage     ID = "recommend.storage"
	RecommendAskIndustry ID = "recommend.ask_industry"
)

const (
	comparePrefix = "compare."
	suggestPrefix = "suggest."
)

// ComparisonID returns the reply for a multi-product comparison key.
func ComparisonID(key product.ComparisonKey) ID {
	return ID(comparePrefix + string(key))
}

// SuggestionID returns the "compare with" reply for a single product.
func SuggestionID(id product.ID) ID {
	return ID(suggestPrefix + string(id))
}

// parameterized lists the replies that interpolate the detected products.
var parameterized = map[ID]bool{
	IntelligentMultiProduct: true,
	FallbackProducts:        true,
}

// Required returns every reply the action handlers can ask for.
func Required() []ID {
	ids := []ID{
		Overview,
		IntelligentSchoolPair,
		IntelligentMultiProduct,
		IntelligentFeatures,
		FallbackCareer,
		FallbackPurchase,
		FallbackOutOfScope,
		FallbackProducts,
		FallbackMenu,
		RecommendEducation,
		RecommendLogistics,
		RecommendStorage,
		RecommendAskIndustry,
	}
	for _, key := range product.ComparisonKeys() {
		ids = append(ids, ComparisonID(key))
	}
	for _, id := range product.IDs() {
		ids = append(ids, SuggestionID(id))
	}
	return ids
}

// Parameterized reports whether the reply takes the product list.
func (id ID) Parameterized() bool {
	return parameterized[id]
}

func (id ID) String() string {
	return string(id)
}
