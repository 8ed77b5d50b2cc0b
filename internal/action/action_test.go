package action

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
)

var store = catalog.MustDefault()

func run(t *testing.T, a Action, text string) Outcome {
	t.Helper()
	out, err := a.Run(context.Background(), NewRequest(text))
	require.NoError(t, err)
	return out
}

func templateOf(t *testing.T, out Outcome) catalog.ID {
	t.Helper()
	require.Len(t, out.Replies, 1)
	return out.Replies[0].Template
}

func catalogText(t *testing.T, id catalog.ID) string {
	t.Helper()
	text, ok := store.Text(id)
	require.True(t, ok, "catalog has no %s", id)
	return text
}

func TestCompareProducts(t *testing.T) {
	a := NewCompareProducts(store)

	tests := []struct {
		name string
		text string
		want catalog.ID
	}{
		{"empty", "", catalog.Overview},
		{"no product", "what do you sell?", catalog.Overview},
		{"single", "tell me about ednect", catalog.SuggestionID(product.Ednect)},
		{"single misspelt", "Des Alite please", catalog.SuggestionID(product.Desalite)},
		{"pair", "compare ednect and desalite", catalog.ComparisonID(product.KeyDesaliteEdnect)},
		{"triple", "what about icebox and transtrack and ednect", catalog.ComparisonID(product.KeyEdnectIceBoxTransTrack)},
		{"all four", "ednect desalite trans track ice box", catalog.ComparisonID(product.KeyAllProducts)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, a, tt.text)
			assert.Equal(t, tt.want, templateOf(t, out))
			assert.Empty(t, out.Slots)
		})
	}
}

func TestCompareProducts_OverviewVerbatim(t *testing.T) {
	out := run(t, NewCompareProducts(store), "hello")
	assert.Equal(t, catalogText(t, catalog.Overview), out.Replies[0].Text)
}

func TestCompareProducts_PairHeaders(t *testing.T) {
	out := run(t, NewCompareProducts(store), "compare ednect and desalite")
	text := out.Replies[0].Text
	assert.Contains(t, text, "EDNECT")
	assert.Contains(t, text, "DESALITE")
}

func TestCompareProducts_ThreeWithoutDesalite(t *testing.T) {
	out := run(t, NewCompareProducts(store), "what about icebox and transtrack and ednect")

	assert.Equal(t, product.KeyEdnectIceBoxTransTrack, out.Mentions.Key())
	text := out.Replies[0].Text
	for _, header := range []string{"EDNECT", "TRANSTRACK", "ICEBOX"} {
		assert.Contains(t, text, header)
	}
	assert.NotContains(t, text, "DESALITE")
}

func TestCompareProducts_OrderIndependent(t *testing.T) {
	a := NewCompareProducts(store)
	first := run(t, a, "ednect and icebox")
	second := run(t, a, "icebox and ednect")

	assert.Equal(t, first.Mentions.Key(), second.Mentions.Key())
	assert.Equal(t, first.Replies, second.Replies)
}

func TestCompareProducts_EveryKeyHasOwnReply(t *testing.T) {
	a := NewCompareProducts(store)
	overview := catalogText(t, catalog.Overview)
	seen := make(map[string]product.ComparisonKey)

	for _, key := range product.ComparisonKeys() {
		t.Run(string(key), func(t *testing.T) {
			set, ok := product.ParseComparisonKey(string(key))
			require.True(t, ok)

			words := make([]string, 0, set.Len())
			for _, id := range set.IDs() {
				words = append(words, string(id))
			}
			out := run(t, a, "compare "+strings.Join(words, " and "))

			assert.Equal(t, catalog.ComparisonID(key), templateOf(t, out))
			text := out.Replies[0].Text
			assert.NotEqual(t, overview, text)
			if prev, dup := seen[text]; dup {
				t.Errorf("%s shares its reply with %s", key, prev)
			}
			seen[text] = key
		})
	}
}

func TestIntelligentResponse(t *testing.T) {
	a := NewIntelligentResponse(store)

	tests := []struct {
		name string
		text string
		want catalog.ID // empty means no message
	}{
		{"single product stays silent", "tell me about ednect", ""},
		{"empty stays silent", "", ""},
		{"aggregate without feature", "what products do you have", ""},
		{"school pair", "ednect or desalite?", catalog.IntelligentSchoolPair},
		{"other pair", "desalite and icebox", catalog.IntelligentMultiProduct},
		{"school pair plus one", "ednect desalite icebox", catalog.IntelligentMultiProduct},
		{"all features", "list all features", catalog.IntelligentFeatures},
		{"every module", "show every module", catalog.IntelligentFeatures},
		{"substring all", "how do I install the attendance module", catalog.IntelligentFeatures},
		{"mentions win over features", "all features of ednect and transtrack", catalog.IntelligentMultiProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, a, tt.text)
			if tt.want == "" {
				assert.Empty(t, out.Replies)
				return
			}
			assert.Equal(t, tt.want, templateOf(t, out))
		})
	}
}

func TestIntelligentResponse_ListsUpperCasedProducts(t *testing.T) {
	out := run(t, NewIntelligentResponse(store), "icebox, ednect and desalite")
	assert.True(t, strings.HasPrefix(out.Replies[0].Text, "**You mentioned: EDNECT, DESALITE, ICEBOX**"), out.Replies[0].Text)
}

func TestExtractContext(t *testing.T) {
	a := NewExtractContext()

	tests := []struct {
		name string
		text string
		want []SlotUpdate
	}{
		{"nothing", "hello", nil},
		{"product only", "tell me about IceBox", []SlotUpdate{{SlotProductName, "icebox"}}},
		{"spaced product", "Trans Track pricing", []SlotUpdate{{SlotProductName, "transtrack"}}},
		{"institute only", "we are a college", []SlotUpdate{{SlotInstituteType, "college"}}},
		{
			name: "first product and school first",
			text: "desalite or ednect for our university and school",
			want: []SlotUpdate{{SlotProductName, "ednect"}, {SlotInstituteType, "school"}},
		},
		{
			name: "college before university",
			text: "icebox at a university college",
			want: []SlotUpdate{{SlotProductName, "icebox"}, {SlotInstituteType, "college"}},
		},
		{"substring school", "preschool", []SlotUpdate{{SlotInstituteType, "school"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, a, tt.text)
			assert.Equal(t, tt.want, out.Slots)
			assert.Empty(t, out.Replies)
		})
	}
}

func TestExtractContext_AtMostOneUpdatePerSlot(t *testing.T) {
	out := run(t, NewExtractContext(), "ednect desalite transtrack icebox school college university")

	counts := map[string]int{}
	for _, s := range out.Slots {
		counts[s.Name]++
	}
	assert.Equal(t, map[string]int{SlotProductName: 1, SlotInstituteType: 1}, counts)
}

func TestFallbackWithContext(t *testing.T) {
	a := NewFallbackWithContext(store)

	tests := []struct {
		name string
		text string
		want catalog.ID
	}{
		{"empty", "", catalog.FallbackMenu},
		{"greeting", "hi", catalog.FallbackMenu},
		{"career", "I need a job", catalog.FallbackCareer},
		{"career beats product", "hiring for ednect team?", catalog.FallbackCareer},
		{"purchase", "how do I buy icebox", catalog.FallbackPurchase},
		{"purchase substring", "desalite and ednect together", catalog.FallbackPurchase},
		{"unrelated support", "my printer is not working", catalog.FallbackOutOfScope},
		{"support for our product", "transtrack is broken", catalog.FallbackProducts},
		{"support mentioning brand", "vasp laptop repair", catalog.FallbackMenu},
		{"products", "tell me about ice box", catalog.FallbackProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, a, tt.text)
			assert.Equal(t, tt.want, templateOf(t, out))
		})
	}
}

func TestFallbackWithContext_ProductSentence(t *testing.T) {
	out := run(t, NewFallbackWithContext(store), "ice box and Desallite")
	assert.True(t, strings.HasPrefix(out.Replies[0].Text, "**About Desalite, IceBox** - I can help with:"), out.Replies[0].Text)
	assert.Equal(t, 2, out.Mentions.Len())
}

func TestFallbackWithContext_CareerText(t *testing.T) {
	out := run(t, NewFallbackWithContext(store), "I need a job")
	assert.Equal(t, catalogText(t, catalog.FallbackCareer), out.Replies[0].Text)
}

func TestProvideRecommendation(t *testing.T) {
	a := NewProvideRecommendation(store)

	tests := []struct {
		name string
		text string
		want catalog.ID
	}{
		{"empty", "", catalog.RecommendAskIndustry},
		{"unknown industry", "we make furniture", catalog.RecommendAskIndustry},
		{"education", "we run a school", catalog.RecommendEducation},
		{"education beats logistics", "student transport", catalog.RecommendEducation},
		{"logistics", "a shipping company", catalog.RecommendLogistics},
		{"logistics beats storage", "delivery from our warehouse", catalog.RecommendLogistics},
		{"storage", "cold chain warehouse", catalog.RecommendStorage},
		{"temperature", "temperature monitoring", catalog.RecommendStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, templateOf(t, run(t, a, tt.text)))
		})
	}
}

func TestOutcome_Scanned(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		text    string
		scanned bool
		found   int
	}{
		{"compare none", NewCompareProducts(store), "what do you sell?", true, 0},
		{"compare pair", NewCompareProducts(store), "ednect or desalite", true, 2},
		{"intelligent silent", NewIntelligentResponse(store), "hello", true, 0},
		{"extract all mentions", NewExtractContext(), "ice box and transtrack", true, 2},
		{"fallback menu", NewFallbackWithContext(store), "hello", true, 0},
		{"fallback products", NewFallbackWithContext(store), "ice box please", true, 1},
		{"fallback career", NewFallbackWithContext(store), "a job at ednect", false, 0},
		{"fallback purchase", NewFallbackWithContext(store), "buy icebox", false, 0},
		{"fallback out of scope", NewFallbackWithContext(store), "my laptop is broken", false, 0},
		{"recommend", NewProvideRecommendation(store), "ednect for our school", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, tt.action, tt.text)
			assert.Equal(t, tt.scanned, out.Scanned)
			assert.Equal(t, tt.found, out.Mentions.Len())
		})
	}
}

func TestOutcome_Result(t *testing.T) {
	out := Outcome{
		Replies: []Reply{{Template: catalog.FallbackMenu, Text: "menu"}},
		Slots: []SlotUpdate{
			{Name: SlotProductName, Value: "icebox"},
			{Name: SlotInstituteType, Value: "school"},
		},
	}

	result := out.Result()

	require.Len(t, result.Events, 2)
	assert.Equal(t, "slot(product_name=icebox)", result.Events[0].String())
	assert.Equal(t, "slot(institute_type=school)", result.Events[1].String())
	require.Len(t, result.Responses, 1)
	assert.Equal(t, "menu", result.Responses[0].Text)

	empty := Outcome{}.Result()
	assert.NotNil(t, empty.Events)
	assert.NotNil(t, empty.Responses)
}

func TestActions_ConcurrentCalls(t *testing.T) {
	registry := NewDefaultRegistry(store)
	texts := []string{"", "compare ednect and desalite", "I need a job", "we run a school", "ice box"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, name := range registry.Names() {
			wg.Add(1)
			go func(name, text string) {
				defer wg.Done()
				if _, err := registry.Dispatch(context.Background(), name, NewRequest(text)); err != nil {
					t.Errorf("%s(%q): %v", name, text, err)
				}
			}(name, texts[i%len(texts)])
		}
	}
	wg.Wait()
}
