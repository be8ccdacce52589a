package report

import "fmt"

// buildPrompt wraps the day's Q&A transcript in the emotion report prompt.
// The model must answer with a single JSON object.
func buildPrompt(transcript string) string {
	return fmt.Sprintf(`당신은 치매 환자를 돌보는 가족(부양자)의 감정을 이해하고 위로하는 심리상담가입니다.
아래 입력은 치매 부양자가 오늘의 세 가지 질문에 답한 Q&A 형식의 기록입니다.

1. 답변 전체를 분석하여 부양자의 오늘 하루 감정 상태를 평가하세요.
2. emotionScore는 1~100 사이의 전반적인 감정 점수입니다. (높을수록 긍정적)
3. emotionAnalysis의 stress, resilience, stability는 각각 0~100 사이의 값입니다.
4. dailySummary는 오늘 하루를 요약하는 2~3문장입니다.
5. letter는 부양자의 노고를 인정하고 혼자가 아니라는 안도감을 주는 따뜻한 편지입니다.
   진심이 느껴지고, 지나친 희망 고문이 되지 않도록 현실적인 언어를 사용하세요.
6. actions는 부양자가 오늘 실천할 수 있는 작은 자기 돌봄 행동 제안입니다.

부양자의 기록:
%s

반드시 아래 JSON 형식으로만 응답하세요. 다른 텍스트는 포함하지 마세요:

{
  "emotionScore": 1-100 사이의 정수,
  "dailySummary": "오늘 하루 요약 (한글, 2~3문장)",
  "emotionAnalysis": {
    "stress": 0-100 사이의 정수,
    "resilience": 0-100 사이의 정수,
    "stability": 0-100 사이의 정수
  },
  "letter": "부양자에게 보내는 편지 (한글)",
  "actions": "자기 돌봄 행동 제안 (한글)"
}

JSON 응답:`, transcript)
}
