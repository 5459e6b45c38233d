package relevance

// Fixed word lists used by the relevance filter. These are deliberately
// static: the filter must stay deterministic and fast, with no model calls.

// commonWords is the denylist of generic tokens that are never brands
var commonWords = map[string]bool{
	// Articles and function words
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"for": true, "with": true, "from": true, "this": true, "that": true,
	"these": true, "those": true, "your": true, "their": true, "our": true,
	// Generic business/tech nouns
	"company": true, "business": true, "platform": true, "software": true,
	"service": true, "services": true, "solution": true, "solutions": true,
	"product": true, "products": true, "tool": true, "tools": true,
	"system": true, "systems": true, "app": true, "apps": true,
	"website": true, "data": true, "cloud": true, "team": true, "teams": true,
	"market": true, "industry": true, "customer": true, "customers": true,
	"user": true, "users": true, "option": true, "options": true,
	"feature": true, "features": true, "pricing": true, "price": true,
	// Generic adjectives
	"best": true, "top": true, "good": true, "great": true, "new": true,
	"popular": true, "leading": true, "free": true, "premium": true,
	"enterprise": true, "modern": true, "simple": true, "easy": true,
}

// nonBusinessBrands are well-known consumer/retail/media/auto/airline brands
// irrelevant to B2B tooling, removed by ApplyBrandFilters
var nonBusinessBrands = map[string]bool{
	"coca-cola": true, "pepsi": true, "mcdonalds": true, "starbucks": true,
	"nike": true, "adidas": true, "walmart": true, "target": true,
	"costco": true, "ikea": true, "netflix": true, "disney": true,
	"spotify": true, "toyota": true, "honda": true, "ford": true,
	"tesla": true, "bmw": true, "mercedes": true, "delta": true,
	"united": true, "lufthansa": true, "ryanair": true, "zara": true,
	"gucci": true, "loreal": true, "nestle": true, "unilever": true,
}

// strongIndicators mark contexts where a very short token may still be a brand
var strongIndicators = []string{
	".com", ".io", ".net", ".org", ".ai",
	"company", "platform", "offers", "founded", "startup", "vendor",
}

// examplePatterns mark illustrative usage ("for example, Acme ...")
var examplePatterns = []string{
	"for example", "for instance", "such as", "like apple", "like google",
	"e.g.", "including",
}

// listPatterns mark enumerations where individual entries carry less weight
var listPatterns = []string{
	", and ", ", or ", "• ", "- ", "1.", "2.", "3.", "options include",
	"alternatives include", "tools like",
}

// positiveIndicators raise relevance: language suggesting a real vendor
var positiveIndicators = []string{
	"recommend", "leading", "trusted", "specializes", "provider",
	"headquartered", "founded", "their product", "their platform",
}

// negativeIndicators lower relevance: language suggesting a generic term
var negativeIndicators = []string{
	"generally", "typically", "concept", "category", "in general",
	"a term", "refers to", "definition",
}

// industryBrands holds known-brand sets per declared industry, used for the
// industry relevance boost
var industryBrands = map[string]map[string]bool{
	"crm": {
		"salesforce": true, "hubspot": true, "pipedrive": true,
		"zoho": true, "freshsales": true,
	},
	"analytics": {
		"mixpanel": true, "amplitude": true, "heap": true,
		"looker": true, "tableau": true,
	},
	"saas": {
		"slack": true, "notion": true, "asana": true, "airtable": true,
		"monday": true, "clickup": true,
	},
	"devtools": {
		"github": true, "gitlab": true, "vercel": true, "datadog": true,
		"sentry": true, "docker": true,
	},
}
