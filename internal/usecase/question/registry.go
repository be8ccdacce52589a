package question

import (
	"fmt"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
)

// TotalQuestions is the number of daily questions.
const TotalQuestions = entities.MaxAudioSlots

// The fixed daily questions. Question 1 is a template personalized with the
// cared-for family member's term of address.
const (
	questionOneTemplate = "오늘 %s%s 부양하면서 어떤 순간이 가장 기억에 남나요?"
	questionTwo         = "지금 이 순간 마음속에서 가장 큰 감정은 무엇인가요?"
	questionThree       = "오늘 나 자신에게 해주고 싶은 말이 있다면?"

	defaultFamilyTerm = "가족분"
)

// Question pairs a question number with its rendered text.
type Question struct {
	Number int    `json:"question_number"`
	Text   string `json:"question_text"`
}

// Registry renders the daily questions for a caregiver profile.
type Registry struct{}

// NewRegistry creates a question registry
func NewRegistry() *Registry {
	return &Registry{}
}

// IsValid reports whether n is a known question number.
func (r *Registry) IsValid(n int) bool {
	return n >= 1 && n <= TotalQuestions
}

// Count returns the number of daily questions.
func (r *Registry) Count() int {
	return TotalQuestions
}

// Text returns the question text for n, personalized from the profile.
// A nil profile renders the default family term.
func (r *Registry) Text(n int, profile *entities.Profile) (string, error) {
	if !r.IsValid(n) {
		return "", usecaseErrors.ErrInvalidQuestionNumber
	}
	switch n {
	case 1:
		term := familyTerm(profile)
		return fmt.Sprintf(questionOneTemplate, term, objectParticle(term)), nil
	case 2:
		return questionTwo, nil
	default:
		return questionThree, nil
	}
}

// All returns every question in order, personalized from the profile.
func (r *Registry) All(profile *entities.Profile) []Question {
	questions := make([]Question, 0, TotalQuestions)
	for n := 1; n <= TotalQuestions; n++ {
		text, _ := r.Text(n, profile)
		questions = append(questions, Question{Number: n, Text: text})
	}
	return questions
}

// familyTerm maps the family relationship and member gender to the Korean
// term of address used in question 1.
func familyTerm(profile *entities.Profile) string {
	if profile == nil {
		return defaultFamilyTerm
	}
	female := profile.FamilyMemberGender == entities.GenderFemale
	switch profile.FamilyRelationship {
	case entities.RelationshipParent:
		if female {
			return "어머니"
		}
		return "아버지"
	case entities.RelationshipSpouse:
		if female {
			return "아내"
		}
		return "남편"
	case entities.RelationshipGrandparent:
		if female {
			return "할머니"
		}
		return "할아버지"
	case entities.RelationshipParentInLaw:
		if female {
			return "어머님"
		}
		return "아버님"
	default:
		return defaultFamilyTerm
	}
}

// objectParticle picks 을 or 를 based on whether the term's final syllable
// carries a trailing consonant.
func objectParticle(term string) string {
	runes := []rune(term)
	if len(runes) == 0 {
		return "를"
	}
	last := runes[len(runes)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return "를"
	}
	if (last-0xAC00)%28 != 0 {
		return "을"
	}
	return "를"
}
