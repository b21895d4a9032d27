package match

// Protein rule tables. All keys and entries are pre-normalized (lowercase,
// no punctuation) so lookups against Normalize output need no further work.
// The tables are package data but never mutated; the matcher closes over
// them read-only.

// broadMeatSynonyms maps a broad protein group to the cuts and preparations
// that count as that group on a flyer. A saved refinement equal to the group
// key matches a flyer item containing ANY entry. Entries are matched by
// plain substring containment: cuts like "ribeye" appear standalone in
// flyer text, so word boundaries are not enforced here.
var broadMeatSynonyms = map[string][]string{
	"beef": {
		"beef", "ribeye", "rib eye", "sirloin", "chuck", "brisket",
		"t bone", "porterhouse", "strip steak", "flank steak",
		"skirt steak", "london broil", "filet mignon", "tenderloin",
		"short ribs", "rib roast", "top round", "bottom round",
		"eye round", "tri tip", "stew meat", "oxtail",
	},
	"chicken": {
		"chicken", "drumstick", "wings", "thighs", "leg quarters",
		"rotisserie", "cornish hen",
	},
	"pork": {
		"pork", "bacon", "ham", "sausage", "kielbasa", "bratwurst",
		"prosciutto", "spare ribs", "baby back ribs", "pulled pork",
	},
	"lamb": {
		"lamb", "lamb chops", "leg of lamb", "lamb shank", "rack of lamb",
		"ground lamb",
	},
	"veal": {
		"veal", "veal cutlet", "veal chops", "osso buco",
	},
	"goat": {
		"goat", "goat meat", "chevon",
	},
}

// seafoodSynonyms maps a specific species or product to its accepted
// spellings. Unlike the broad-meat groups there is no catch-all key: the
// user picks the species they actually want.
var seafoodSynonyms = map[string][]string{
	"salmon":    {"salmon", "sockeye", "coho", "lox"},
	"shrimp":    {"shrimp", "prawns"},
	"cod":       {"cod", "scrod"},
	"tuna":      {"tuna", "ahi", "albacore", "yellowfin"},
	"tilapia":   {"tilapia"},
	"haddock":   {"haddock"},
	"halibut":   {"halibut"},
	"flounder":  {"flounder", "fluke"},
	"trout":     {"trout"},
	"catfish":   {"catfish"},
	"swordfish": {"swordfish"},
	"mahi mahi": {"mahi mahi", "mahi"},
	"scallops":  {"scallop", "scallops", "bay scallops", "sea scallops"},
	"crab":      {"crab", "crab legs", "king crab", "snow crab"},
	"lobster":   {"lobster", "lobster tails"},
	"clams":     {"clam", "clams"},
	"mussels":   {"mussel", "mussels"},
	"oysters":   {"oyster", "oysters"},
	"calamari":  {"calamari", "squid"},
	"sardines":  {"sardine", "sardines"},
}

// seafoodExclusions are refinements that deliberately match nothing. A bare
// "seafood" saved item would otherwise light up half the flyer, so the
// product treats it as too broad to act on. Users pick a species instead.
var seafoodExclusions = map[string]struct{}{
	"seafood":  {},
	"fish":     {},
	"sea food": {},
}
