package entities

// Fallback prose used when the model omits narrative fields. A report is
// never returned without letter and action content.
const (
	FallbackLetter  = "오늘 하루도 정말 수고 많으셨어요. 당신의 헌신은 분명 큰 의미가 있습니다. 내일도 함께할게요."
	FallbackActions = "잠시 짧은 산책이나 따뜻한 차 한 잔으로 나만의 시간을 가져보세요."
)

// EmotionAnalysis holds the three bounded sub-scores (0-100 each).
type EmotionAnalysis struct {
	Stress     int `json:"stress"`
	Resilience int `json:"resilience"`
	Stability  int `json:"stability"`
}

// EmotionReport is the structured daily wellbeing report derived from the
// combined transcript. Numeric values come from the model as-is; only the
// narrative fields are guaranteed non-empty.
type EmotionReport struct {
	EmotionScore    int             `json:"emotionScore"`
	DailySummary    string          `json:"dailySummary"`
	EmotionAnalysis EmotionAnalysis `json:"emotionAnalysis"`
	Letter          string          `json:"letter"`
	Actions         string          `json:"actions,omitempty"`
}

// ApplyFallbacks substitutes the fixed fallback prose for missing narrative
// fields. Numeric fields are passed through unmodified.
func (r *EmotionReport) ApplyFallbacks() {
	if r.Letter == "" {
		r.Letter = FallbackLetter
	}
	if r.Actions == "" {
		r.Actions = FallbackActions
	}
}
