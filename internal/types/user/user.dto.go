package user

type CreateUserRequest struct {
	ClerkID string `json:"clerkId" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,max=50"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Height      *string `json:"height,omitempty"`
	Weight      *string `json:"weight,omitempty"`
	FitnessGoal *string `json:"fitnessGoal,omitempty"`
}

type ProfileResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}
