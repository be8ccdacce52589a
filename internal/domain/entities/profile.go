package entities

import (
	"time"

	"github.com/google/uuid"
)

// Gender is a closed categorical type validated once at the API boundary.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid checks if the gender value is valid
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// FamilyRelationship describes who the cared-for family member is to the caregiver.
type FamilyRelationship string

const (
	RelationshipParent      FamilyRelationship = "parent"
	RelationshipSpouse      FamilyRelationship = "spouse"
	RelationshipGrandparent FamilyRelationship = "grandparent"
	RelationshipParentInLaw FamilyRelationship = "parent_in_law"
	RelationshipRelative    FamilyRelationship = "relative"
)

// IsValid checks if the relationship value is valid
func (r FamilyRelationship) IsValid() bool {
	switch r {
	case RelationshipParent, RelationshipSpouse, RelationshipGrandparent,
		RelationshipParentInLaw, RelationshipRelative:
		return true
	}
	return false
}

// DementiaStage describes the family member's diagnosed stage.
type DementiaStage string

const (
	StageEarly  DementiaStage = "early"
	StageMiddle DementiaStage = "middle"
	StageSevere DementiaStage = "severe"
)

// IsValid checks if the dementia stage value is valid
func (s DementiaStage) IsValid() bool {
	switch s {
	case StageEarly, StageMiddle, StageSevere:
		return true
	}
	return false
}

// Profile holds the caregiver's onboarding data plus the cared-for family
// member attributes used for question personalization.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	BirthYear int       `json:"birth_year" gorm:"not null"`
	Gender    Gender    `json:"gender" gorm:"type:varchar(16);not null"`

	FamilyRelationship FamilyRelationship `json:"family_relationship" gorm:"type:varchar(32);not null"`
	DailyCareHours     int                `json:"daily_care_hours" gorm:"default:0;not null"`

	// Cared-for family member
	FamilyMemberName          string        `json:"family_member_name" gorm:"type:varchar(255);not null"`
	FamilyMemberBirthYear     int           `json:"family_member_birth_year" gorm:"not null"`
	FamilyMemberGender        Gender        `json:"family_member_gender" gorm:"type:varchar(16);not null"`
	FamilyMemberDementiaStage DementiaStage `json:"family_member_dementia_stage" gorm:"type:varchar(16);not null"`

	IsOnboarded        bool       `json:"is_onboarded" gorm:"default:false;not null"`
	TotalConversations int        `json:"total_conversations" gorm:"default:0;not null"`
	LastActiveAt       *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates an onboarded profile with a fresh user id.
func NewProfile(name string, birthYear int, gender Gender) *Profile {
	now := time.Now()
	return &Profile{
		ID:          uuid.New(),
		UserID:      uuid.NewString(),
		Name:        name,
		BirthYear:   birthYear,
		Gender:      gender,
		IsOnboarded: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates profile data
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if !p.Gender.IsValid() || !p.FamilyMemberGender.IsValid() {
		return ErrInvalidGender
	}
	if !p.FamilyRelationship.IsValid() {
		return ErrInvalidRelationship
	}
	if !p.FamilyMemberDementiaStage.IsValid() {
		return ErrInvalidDementiaStage
	}
	return nil
}

// UpdateActivity updates the last active timestamp
func (p *Profile) UpdateActivity() {
	now := time.Now()
	p.LastActiveAt = &now
	p.UpdatedAt = now
}
