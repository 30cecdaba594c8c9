package pattern

import "github.com/patternagent/fabric-agent/internal/source"

// Rule is one entry in the auto-selection table. A rule matches when every
// Required term appears in the task and, if AnyOf is non-empty, at least one
// AnyOf term appears in the task or the source kind is listed in Kinds.
type Rule struct {
	Required []string
	AnyOf    []string
	Kinds    []source.Kind
	Pattern  string
}

// ytKinds marks rules tied to the video medium: a youtube source satisfies
// the rule's any-of group even when no video word appears in the task.
var ytKinds = []source.Kind{source.KindYouTube}

// autoSelectRules is the ordered auto-selection table. Evaluation is strictly
// top-to-bottom, first full match wins; table order is the only tie-break.
// Keywords cover English and German task phrasings.
var autoSelectRules = []Rule{
	// Video patterns (EN + DE)
	{Required: []string{"summarize"}, AnyOf: []string{"video", "youtube"}, Kinds: ytKinds, Pattern: "youtube_summary"},
	{Required: []string{"zusammenfass"}, AnyOf: []string{"video", "youtube"}, Kinds: ytKinds, Pattern: "youtube_summary"},
	{Required: []string{"extract", "wisdom"}, Pattern: "extract_wisdom"},
	{Required: []string{"extrahier", "weisheit"}, Pattern: "extract_wisdom"},
	{Required: []string{"lecture"}, AnyOf: []string{"video", "youtube", "summarize", "notes"}, Kinds: ytKinds, Pattern: "summarize_lecture"},
	{Required: []string{"vorlesung"}, AnyOf: []string{"video", "youtube", "zusammenfass"}, Kinds: ytKinds, Pattern: "summarize_lecture"},
	{Required: []string{"chapters"}, AnyOf: []string{"video", "youtube", "timestamps"}, Kinds: ytKinds, Pattern: "create_video_chapters"},
	{Required: []string{"kapitel"}, AnyOf: []string{"video", "youtube", "zeitstempel"}, Kinds: ytKinds, Pattern: "create_video_chapters"},

	// Document patterns (EN + DE)
	{Required: []string{"paper"}, AnyOf: []string{"summarize", "academic", "research"}, Pattern: "summarize_paper"},
	{Required: []string{"paper"}, AnyOf: []string{"zusammenfass", "akademisch", "forschung", "wissenschaftlich"}, Pattern: "summarize_paper"},
	{Required: []string{"analyze", "paper"}, Pattern: "analyze_paper"},
	{Required: []string{"analysier", "paper"}, Pattern: "analyze_paper"},

	// Security patterns (EN + DE)
	{Required: []string{"threat"}, AnyOf: []string{"report", "security"}, Pattern: "analyze_threat_report"},
	{Required: []string{"bedrohung"}, AnyOf: []string{"bericht", "sicherheit"}, Pattern: "analyze_threat_report"},
	{Required: []string{"malware"}, Pattern: "analyze_malware"},
	{Required: []string{"schadsoftware"}, Pattern: "analyze_malware"},
	{Required: []string{"sigma"}, AnyOf: []string{"rule", "detection", "regel", "erkennung"}, Pattern: "create_sigma_rules"},
	{Required: []string{"stride"}, Pattern: "create_stride_threat_model"},
	{Required: []string{"threat", "model"}, Pattern: "create_stride_threat_model"},
	{Required: []string{"bedrohungsmodell"}, Pattern: "create_stride_threat_model"},

	// Code patterns (EN + DE)
	{Required: []string{"explain", "code"}, Pattern: "explain_code"},
	{Required: []string{"erklär", "code"}, Pattern: "explain_code"},
	{Required: []string{"review"}, AnyOf: []string{"design", "architecture"}, Pattern: "review_design"},
	{Required: []string{"überprüf"}, AnyOf: []string{"design", "architektur"}, Pattern: "review_design"},

	// General patterns (EN + DE)
	{Required: []string{"extract", "ideas"}, Pattern: "extract_ideas"},
	{Required: []string{"extrahier", "ideen"}, Pattern: "extract_ideas"},
	{Required: []string{"extract", "insights"}, Pattern: "extract_insights"},
	{Required: []string{"extrahier", "erkenntnisse"}, Pattern: "extract_insights"},
	{Required: []string{"analyze", "claims"}, Pattern: "analyze_claims"},
	{Required: []string{"analysier", "behauptungen"}, Pattern: "analyze_claims"},
	{Required: []string{"improve", "writing"}, Pattern: "improve_writing"},
	{Required: []string{"summarize"}, Pattern: "summarize"},
	{Required: []string{"zusammenfass"}, Pattern: "summarize"},
}

// sourceAction pairs a single action keyword with a pattern.
type sourceAction struct {
	Action  string
	Pattern string
}

// sourceActions is the fast path for sources with explicit medium context:
// when the source kind already names the medium, a single action keyword in
// the task is enough to pick a pattern.
var sourceActions = map[source.Kind][]sourceAction{
	source.KindYouTube: {
		{"summarize", "youtube_summary"},
		{"zusammenfass", "youtube_summary"},
		{"wisdom", "extract_wisdom"},
		{"extract", "extract_wisdom"},
		{"insights", "extract_wisdom"},
		{"lecture", "summarize_lecture"},
		{"chapters", "create_video_chapters"},
	},
	source.KindPDF: {
		{"summarize", "summarize_paper"},
		{"zusammenfass", "summarize_paper"},
		{"analyze", "analyze_paper"},
		{"analysier", "analyze_paper"},
	},
}
