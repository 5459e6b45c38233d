package sentiment

// Fixed lexicons for additive sentiment scoring. Single words contribute +1,
// brand-parameterized patterns +2. The {brand} placeholder is substituted
// with the lowercase brand name at classification time.

var positiveWords = []string{
	"excellent", "great", "good", "best", "reliable", "robust", "powerful",
	"intuitive", "popular", "leading", "trusted", "recommended", "strong",
	"seamless", "flexible", "innovative", "affordable", "efficient",
}

var negativeWords = []string{
	"bad", "poor", "worst", "unreliable", "buggy", "clunky", "expensive",
	"slow", "limited", "outdated", "confusing", "frustrating", "lacking",
	"issues", "problems", "complaints", "downsides", "drawbacks",
}

var positivePatterns = []string{
	"use {brand}", "try {brand}", "recommend {brand}", "choose {brand}",
	"{brand} excels", "{brand} stands out", "{brand} is known for",
	"love {brand}", "prefer {brand}", "switch to {brand}",
}

var negativePatterns = []string{
	"avoid {brand}", "{brand} struggles", "{brand} falls short",
	"{brand} lags", "stay away from {brand}", "moved away from {brand}",
	"{brand} lacks", "complaints about {brand}", "problems with {brand}",
}

// Context classification pattern sets, checked in priority order:
// recommendation first, then comparison, then example; default "mention".

var recommendationPatterns = []string{
	"recommend", "should use", "should try", "try ", "choose",
	"best option", "best choice", "go with", "suggest", "ideal for",
}

var comparisonPatterns = []string{
	" vs ", " vs.", "versus", "compared to", "comparison", "better than",
	"worse than", "alternative to", "alternatives to", "instead of",
}

var examplePatterns = []string{
	"for example", "for instance", "such as", "e.g.", "including",
	"like other", "among others", "one of many",
}
