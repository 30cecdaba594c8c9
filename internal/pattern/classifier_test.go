package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternagent/fabric-agent/internal/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		kind    source.Kind
		want    string
		matched bool
	}{
		{name: "summarize plus video", task: "summarize this video", kind: source.KindRaw, want: "youtube_summary", matched: true},
		{name: "summarize plus youtube", task: "please summarize the youtube talk", kind: source.KindRaw, want: "youtube_summary", matched: true},
		{name: "summarize with yt source", task: "summarize this", kind: source.KindYouTube, want: "youtube_summary", matched: true},
		{name: "summarize alone", task: "summarize this article", kind: source.KindRaw, want: "summarize", matched: true},
		{name: "extract wisdom", task: "extract the wisdom from this talk", kind: source.KindRaw, want: "extract_wisdom", matched: true},
		{name: "extract on yt source", task: "extract the key points", kind: source.KindYouTube, want: "extract_wisdom", matched: true},
		{name: "lecture video", task: "take notes on this lecture", kind: source.KindYouTube, want: "summarize_lecture", matched: true},
		{name: "chapters", task: "create chapters for the video", kind: source.KindRaw, want: "create_video_chapters", matched: true},
		{name: "summarize pdf source", task: "summarize it", kind: source.KindPDF, want: "summarize_paper", matched: true},
		{name: "analyze pdf source", task: "analyze this", kind: source.KindPDF, want: "analyze_paper", matched: true},
		{name: "summarize paper", task: "summarize this research paper", kind: source.KindRaw, want: "summarize_paper", matched: true},
		{name: "analyze paper", task: "analyze the paper methodology", kind: source.KindRaw, want: "analyze_paper", matched: true},
		{name: "threat report", task: "analyze this threat report", kind: source.KindRaw, want: "analyze_threat_report", matched: true},
		{name: "malware", task: "what does this malware do", kind: source.KindRaw, want: "analyze_malware", matched: true},
		{name: "sigma rules", task: "create sigma detection rules", kind: source.KindRaw, want: "create_sigma_rules", matched: true},
		{name: "stride model", task: "build a stride analysis", kind: source.KindRaw, want: "create_stride_threat_model", matched: true},
		{name: "explain code", task: "explain this code to me", kind: source.KindRaw, want: "explain_code", matched: true},
		{name: "review design", task: "review the system design", kind: source.KindRaw, want: "review_design", matched: true},
		{name: "extract ideas", task: "extract the main ideas", kind: source.KindRaw, want: "extract_ideas", matched: true},
		{name: "analyze claims", task: "analyze the claims made here", kind: source.KindRaw, want: "analyze_claims", matched: true},
		{name: "improve writing", task: "improve my writing please", kind: source.KindRaw, want: "improve_writing", matched: true},
		{name: "german summarize video", task: "fasse dieses video zusammen, bitte zusammenfassen", kind: source.KindRaw, want: "youtube_summary", matched: true},
		{name: "german summarize", task: "bitte zusammenfassen", kind: source.KindRaw, want: "summarize", matched: true},
		{name: "empty task", task: "", kind: source.KindYouTube, matched: false},
		{name: "whitespace task", task: "   ", kind: source.KindRaw, matched: false},
		{name: "no match", task: "translate this into french", kind: source.KindRaw, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.task, tt.kind)
			require.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got, ok := Classify("SUMMARIZE This VIDEO", source.KindRaw)
	require.True(t, ok)
	assert.Equal(t, "youtube_summary", got)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// "summarize" plus "video" satisfies both the youtube_summary rule and
	// the catch-all summarize rule; table order decides.
	got, ok := Classify("summarize this video about cooking", source.KindRaw)
	require.True(t, ok)
	assert.Equal(t, "youtube_summary", got)

	// Same task repeated must classify identically.
	for i := 0; i < 10; i++ {
		again, ok := Classify("summarize this video about cooking", source.KindRaw)
		require.True(t, ok)
		assert.Equal(t, got, again)
	}
}

func TestClassifySourceKindStandsInForMedium(t *testing.T) {
	// Without a video word and without a video source there is no medium
	// context, so the catch-all applies.
	got, ok := Classify("summarize the talk", source.KindURL)
	require.True(t, ok)
	assert.Equal(t, "summarize", got)

	// The yt source supplies the medium on its own.
	got, ok = Classify("summarize the talk", source.KindYouTube)
	require.True(t, ok)
	assert.Equal(t, "youtube_summary", got)
}
