// Command verify checks the reply catalog for consistency with the action
// handlers: every reply present, comparison replies distinct and naming
// exactly their products, parameterized replies rendering.
//
// Usage: verify [catalog.yaml]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vasptech/vaspx-actions/internal/action"
	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/config"
	"github.com/vasptech/vaspx-actions/internal/product"
)

// Verification results
type verifyResult struct {
	name    string
	passed  bool
	message string
}

func main() {
	fmt.Println("🔍 VaspX Actions - Catalog Consistency Verification Tool")
	fmt.Println("========================================================")

	path := os.Getenv(config.EnvTemplatesPath)
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	store, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Printf("❌ Catalog load: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d replies from %s (version %d)\n", store.Len(), store.Source(), store.Version())

	results := verifyAll(store)

	fmt.Println("\n📊 Verification Results:")
	fmt.Println("========================")

	passedCount, failedCount := 0, 0
	for _, result := range results {
		status := "❌"
		if result.passed {
			status = "✅"
			passedCount++
		} else {
			failedCount++
		}
		fmt.Printf("%s %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\n📈 Summary: %d passed, %d failed\n", passedCount, failedCount)

	if failedCount > 0 {
		os.Exit(1)
	}
}

func verifyAll(store *catalog.Store) []verifyResult {
	var results []verifyResult
	results = append(results, verifyRequired(store))
	results = append(results, verifyComparisonsDistinct(store))
	results = append(results, verifyComparisonProducts(store)...)
	results = append(results, verifyParameterized(store)...)
	results = append(results, verifyActions(store))
	return results
}

// verifyRequired checks every reply the handlers can ask for is present.
func verifyRequired(store *catalog.Store) verifyResult {
	missing := store.Missing()
	required := len(catalog.Required())
	msg := fmt.Sprintf("%d of %d present", required-len(missing), required)
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, id := range missing {
			names[i] = id.String()
		}
		msg += ", missing " + strings.Join(names, ", ")
	}
	return verifyResult{
		name:    "Required Replies",
		passed:  len(missing) == 0,
		message: msg,
	}
}

// verifyComparisonsDistinct checks no two comparison keys share a reply.
func verifyComparisonsDistinct(store *catalog.Store) verifyResult {
	seen := make(map[string]product.ComparisonKey)
	var dupes []string
	for _, key := range product.ComparisonKeys() {
		text, _ := store.Text(catalog.ComparisonID(key))
		if prev, ok := seen[text]; ok {
			dupes = append(dupes, prev.String()+" = "+key.String())
			continue
		}
		seen[text] = key
	}

	msg := fmt.Sprintf("%d distinct comparison replies", len(seen))
	if len(dupes) > 0 {
		msg = "duplicate replies: " + strings.Join(dupes, "; ")
	}
	return verifyResult{
		name:    "Comparison Replies Distinct",
		passed:  len(dupes) == 0,
		message: msg,
	}
}

// verifyComparisonProducts checks each comparison reply names exactly the
// products of its key.
func verifyComparisonProducts(store *catalog.Store) []verifyResult {
	results := make([]verifyResult, 0, len(product.ComparisonKeys()))
	for _, key := range product.ComparisonKeys() {
		set, _ := product.ParseComparisonKey(key.String())
		text, _ := store.Text(catalog.ComparisonID(key))
		upper := strings.ToUpper(text)

		var problems []string
		for _, id := range product.IDs() {
			named := strings.Contains(upper, strings.ToUpper(id.DisplayName()))
			switch {
			case set.Has(id) && !named:
				problems = append(problems, "omits "+id.DisplayName())
			case !set.Has(id) && named:
				problems = append(problems, "mentions "+id.DisplayName())
			}
		}

		msg := "names " + strings.Join(set.DisplayNames(), ", ")
		if len(problems) > 0 {
			msg = strings.Join(problems, ", ")
		}
		results = append(results, verifyResult{
			name:    "Comparison " + key.String(),
			passed:  len(problems) == 0,
			message: msg,
		})
	}
	return results
}

// verifyParameterized checks replies taking the product list render it.
func verifyParameterized(store *catalog.Store) []verifyResult {
	var results []verifyResult
	sample := strings.Join(product.NewMentionSet(product.TransTrack, product.IceBox).DisplayNames(), ", ")
	for _, id := range catalog.Required() {
		if !id.Parameterized() {
			continue
		}
		text, err := store.Render(id, catalog.Data{Products: sample})
		result := verifyResult{name: "Render " + id.String()}
		switch {
		case err != nil:
			result.message = err.Error()
		case !strings.Contains(text, sample):
			result.message = "rendered reply does not include the product list"
		default:
			result.passed = true
			result.message = "renders the product list"
		}
		results = append(results, result)
	}
	return results
}

// verifyActions checks the default registry wires every action.
func verifyActions(store *catalog.Store) verifyResult {
	registry := action.NewDefaultRegistry(store)
	want := []string{
		action.CompareProductsName,
		action.IntelligentResponseName,
		action.ExtractContextName,
		action.FallbackWithContextName,
		action.ProvideRecommendationName,
	}
	var missing []string
	for _, name := range want {
		if _, ok := registry.Get(name); !ok {
			missing = append(missing, name)
		}
	}

	msg := fmt.Sprintf("%d actions registered", registry.Len())
	if len(missing) > 0 {
		msg = "missing " + strings.Join(missing, ", ")
	}
	return verifyResult{
		name:    "Registered Actions",
		passed:  len(missing) == 0 && registry.Len() == len(want),
		message: msg,
	}
}
