package news

// DefaultLanguage is assigned to articles when detection yields nothing.
const DefaultLanguage = "en"

// Categories supported by the provider's top-headlines endpoint, in the
// order ingestion workers are spawned.
var Categories = []string{
	"business", "entertainment", "general", "health", "science", "sports", "technology",
}

var ValidCategories = toSet(Categories)

// ValidLanguages mirrors the provider's accepted language codes.
var ValidLanguages = toSet([]string{
	"ar", "en", "cn", "de", "es", "fr", "he", "it", "nl", "no", "pt", "ru",
	"sv", "se", "ud", "zh", "en-US",
})

// ValidCountries mirrors the provider's accepted country codes.
var ValidCountries = toSet([]string{
	"ae", "ar", "at", "au", "be", "bg", "br", "ca", "ch", "cn", "co", "cu",
	"cz", "de", "eg", "es", "fr", "gb", "gr", "hk", "hu", "id", "ie", "il",
	"in", "is", "it", "jp", "kr", "lt", "lv", "ma", "mx", "my", "ng", "nl",
	"no", "nz", "ph", "pk", "pl", "pt", "ro", "rs", "ru", "sa", "se", "sg",
	"si", "sk", "th", "tr", "tw", "ua", "us", "ve", "za", "zh",
})

func IsValidCategory(value string) bool {
	_, ok := ValidCategories[value]
	return ok
}

func IsValidLanguage(value string) bool {
	_, ok := ValidLanguages[value]
	return ok
}

func IsValidCountry(value string) bool {
	_, ok := ValidCountries[value]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
