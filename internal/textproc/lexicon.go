package textproc

// Curated lookup data for the bilingual pipeline. Everything in this file is
// built once at init and read-only afterwards. The synonym map is directional
// and occasionally asymmetric on purpose; do not symmetrize it.

var devotionalPhrasesHI = []string{
	"दंडवत प्रणाम", "दण्डवत प्रणाम", "दंडवत", "दण्डवत",
	"प्रणाम", "प्रणाम जी", "प्रणामजी",
	"जय गुरु", "जय गुरु।", "जय गुरुजी", "जय गुरुदेव",
	"प्रभु जी", "प्रभुजी", "प्रभु जी।",
	"राधे राधे", "जय श्री राधे", "श्री राधे",
	"हरी बोल", "हरि बोल", "गौर हरि बोल", "निताई गौर हरि बोल",
}

var devotionalPhrasesRoman = []string{
	"dandavat pranam", "dandavat", "pranam",
	"jai guru", "jai gurudev",
	"prabhu ji", "prabhuji",
	"radhe radhe", "hari bol",
	"nitai gaur hari bol", "gaur hari bol",
}

// englishStopwords prevents false lexical matches for English queries.
var englishStopwords = map[string]struct{}{}

var englishStopwordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from", "has", "have", "he", "her",
	"his", "i", "if", "in", "into", "is", "it", "its", "me", "my", "not", "of", "on", "or", "our",
	"she", "so", "that", "the", "their", "them", "then", "there", "these", "they", "this", "to",
	"was", "we", "were", "what", "when", "where", "which", "who", "will", "with", "you", "your",
	"am", "able", "can", "cant", "cannot", "could", "couldnt", "do", "does", "doesnt", "did", "didnt",
	"been", "being", "im", "ive", "id", "ill", "wont", "dont", "isnt", "arent", "wasnt", "werent",
}

// slicerStopwords additionally filters the quick-filter keyword extraction;
// it is never applied to search tokenization.
var slicerStopwords = map[string]struct{}{}

var slicerStopwordList = []string{
	"should", "how", "why", "when", "where", "which", "who",
	"during", "since", "only", "also", "down", "up", "into",
	"from", "about", "after", "before", "over", "under", "within",

	"radheshyam", "radhe", "shyam", "shri",
	"baba", "babaji", "gurudev", "guru", "ji",
	"lord", "prabhu", "dev",
	"babashri", "maharaj",

	"please", "kindly", "guide", "guidance",
	"salutations", "bow", "feet", "ground",
	"question",

	"do", "does", "did", "done", "make", "made",
	"use", "using", "used", "get", "got",
	"day", "month", "year", "time",
	"want", "show", "everything", "full",
}

// synonyms maps a canonical phrase or token to its surface-form variants.
// Keys containing a space are matched as substrings of the cleaned query;
// single-word keys are additionally matched per token.
var synonyms = map[string][]string{
	"छीन": {
		"छिन", "छीनना", "छीना", "छीने", "छीन लिया", "छीन लिए",
		"छीन ले", "छीन लेता", "छीन लेते", "छीन लेती", "छीन लेते हैं",
		"छीन लिया गया", "छीन लिया जाता", "छीन लिया जाता है",
		"झपट", "झपट लेना", "झपट लिया",
		"हरण", "हरण करना", "हरण कर लेना", "हरण हो गया",
		"छीन-झपट",
		"ले लेना", "ले लिया", "ले लेते", "ले लेते हैं",
	},

	"छीन लेना": {
		"छीन लिया", "छीन लिए", "छीन लेता", "छीन लेते", "छीन लेते हैं",
		"हरण", "हरण करना", "हरण कर लेना",
		"वापस लेना", "वापस ले लेना", "वापस ले लिया",
		"ले लेना", "ले लिया", "ले लेते", "ले लेते हैं",
		"खींच लेना", "उठा लेना",
		"खो देना", "वंचित करना",
	},

	"छीनना": {
		"छीन", "छिन", "छीन लिया", "छीन लेते", "छीन लेते हैं",
		"हरण", "हरण करना",
		"ले लेना", "ले लिया", "ले लेते",
	},

	"ले लेना": {
		"ले लिया", "ले लिए", "ले लेते", "ले लेते हैं", "ले गया", "ले गए", "ले गये",
		"उठा लेना", "उठा लिया",
		"ख़ींच लेना", "खींच लेना", "खींच लिया", "खिंच लिया",
		"वापस लेना", "वापस ले लेना", "लौटा लेना", "लौटा लिया",
		"हरण", "हरण करना",
		"छीन", "छीन लेना",
	},

	"ले लेते": {
		"ले लेते हैं", "ले लिया", "ले लेना",
		"छीन लेते", "छीन लेते हैं",
		"हरण", "हरण कर लेते",
	},

	"ले लेते हैं": {
		"ले लेते", "ले लिया", "ले लेना",
		"छीन लेते", "छीन लेते हैं",
		"हरण",
	},

	"वापस लेना": {
		"वापस ले लेना", "वापस ले लिया", "वापस ले लेते", "वापस ले लेते हैं",
		"लौटा लेना", "लौटा लिया",
		"छीन लेना", "हरण", "ले लेना",
	},

	"खींच लेना": {
		"खिंच लेना", "खींच लिया", "खिंच लिया",
		"ले लेना", "वापस लेना", "छीन लेना",
	},

	"उठा लेना": {
		"उठा लिया", "ले लेना", "ले लिया",
		"छीन लेना",
	},

	"वंचित": {
		"वंचित करना", "वंचित हो गया",
		"अधिकार छीन", "अधिकार छीनना",
		"से वंचित", "से वंचित करना",
		"न मिलने देना", "रोक देना",
	},

	"रोक देना": {
		"रोक", "रोकना", "रुक गया", "रुक जाना",
		"बंद कर देना", "बंद कर दिया",
		"न मिलने देना", "न देना",
		"वंचित करना",
	},

	"बंद कर देना": {
		"बंद कर दिया", "बंद कर दी", "बंद हो गया",
		"रोक देना", "रोकना",
	},

	"हटा देना": {
		"हटा", "हटाना", "हटा दिया", "हटा दी",
		"दूर करना", "दूर कर देना", "दूर हो गया",
		"निकाल देना", "निकाल दिया",
		"छीन लेना", "ले लेना",
	},

	"दूर करना": {
		"दूर कर देना", "दूर हो जाना", "हटा देना", "निकाल देना",
	},

	"खो देना": {
		"खो गया", "खो गई", "खो गए",
		"गुम हो गया", "गुम गया",
		"नष्ट हो गया", "चला गया",
		"हाथ से निकल गया",
		"ले लिया", "वापस ले लिया",
	},

	"चला गया": {
		"चला गया था", "चले गए", "चली गई",
		"छूट गया", "छूट गई",
		"खो गया",
	},

	"जप्त": {
		"जब्त", "जप्त करना", "जब्त करना",
		"कब्ज़ा", "कब्जा", "कब्जा कर लेना",
		"छीन लेना",
	},

	"परीक्षा": {
		"परीक्षा लेना", "परीक्षा ले रहे",
		"परखना", "परख लेते",
		"लीला", "कृपा", "अनुग्रह",
		"वैराग्य", "त्याग",
		"आसक्ति", "मोह", "बंधन",
	},

	"आसक्ति": {
		"मोह", "बंधन", "लगाव",
		"वैराग्य", "त्याग",
		"हटा देना", "दूर करना",
	},

	"सब कुछ ले": {
		"सब कुछ ले लिया",
		"सब कुछ छीन लिया",
		"सब कुछ हरण",
		"सब कुछ ले लेते",
		"सब कुछ ले लेते हैं",
	},

	"सब कुछ ले लेते": {
		"सब कुछ ले लेते हैं",
		"सब कुछ ले लिया",
		"सब कुछ छीन लिया",
		"सब कुछ हरण",
	},
}

// bridgeTokens are so common that synonym chaining through them matches
// unrelated records; they are stripped from expansions unless the query
// carries one of bridgeTriggers.
var bridgeTokens = map[string]struct{}{}

var bridgeTokenList = []string{
	"ले", "लेना", "ले लिया", "ले लिए", "ले लेते", "ले लेते हैं",
	"ले गया", "ले गए", "ले गये",
}

var bridgeTriggers = []string{
	"छीन", "हरण", "वापस", "खींच", "उठा", "वंचित", "जप्त", "जब्त", "कब्जा", "कब्ज़ा",
}

// Cross-language illness bridge, helps "I am sick" reach cold/cough records.
var illnessSynonymsEN = map[string][]string{
	"sick":  {"ill", "unwell", "fever", "cold", "cough", "flu", "temperature"},
	"ill":   {"sick", "unwell", "fever", "cold", "cough", "flu"},
	"fever": {"temperature", "high", "bukhar", "bukhaar"},
	"cold":  {"cough", "flu", "runny", "nose"},
	"cough": {"cold", "flu", "throat"},
}

var illnessBridgeHI = map[string][]string{
	"बीमार": {"जुकाम", "खांसी", "बुखार", "सर्दी", "कफ"},
	"जुकाम": {"सर्दी", "खांसी", "बीमार"},
	"खांसी": {"जुकाम", "सर्दी", "बीमार"},
	"बुखार": {"ताप", "बीमार"},
	"सर्दी": {"जुकाम", "खांसी", "बीमार"},
}

func init() {
	for _, w := range englishStopwordList {
		englishStopwords[w] = struct{}{}
	}
	for _, w := range slicerStopwordList {
		slicerStopwords[w] = struct{}{}
	}
	for _, w := range bridgeTokenList {
		bridgeTokens[w] = struct{}{}
	}
}

// IsEnglishStopword reports whether the token is in the English stopword set.
func IsEnglishStopword(tok string) bool {
	_, ok := englishStopwords[tok]
	return ok
}

// IsSlicerStopword reports whether the token is excluded from quick-filter
// keyword extraction.
func IsSlicerStopword(tok string) bool {
	_, ok := slicerStopwords[tok]
	return ok
}
