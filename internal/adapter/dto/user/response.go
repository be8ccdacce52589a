package user

// OnboardingResponse is returned after a successful onboarding
type OnboardingResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// OnboardingStatusResponse reports the onboarding state for a user
type OnboardingStatusResponse struct {
	UserID      string `json:"user_id"`
	IsOnboarded bool   `json:"is_onboarded"`
	Message     string `json:"message"`
}
