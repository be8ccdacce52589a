package user

// OnboardingRequest is the onboarding form submitted by the app
type OnboardingRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	BirthYear      int    `json:"birth_year" validate:"required,min=1900,max=2100"`
	Gender         string `json:"gender" validate:"required,oneof=male female"`
	Relationship   string `json:"relationship" validate:"required,oneof=parent spouse grandparent parent_in_law relative"`
	DailyCareHours int    `json:"daily_care_hours" validate:"min=0,max=24"`

	FamilyMemberName          string `json:"family_member_name" validate:"required,min=1,max=255"`
	FamilyMemberBirthYear     int    `json:"family_member_birth_year" validate:"required,min=1900,max=2100"`
	FamilyMemberGender        string `json:"family_member_gender" validate:"required,oneof=male female"`
	FamilyMemberDementiaStage string `json:"family_member_dementia_stage" validate:"required,oneof=early middle severe"`
}
