package domain

// SignUpRequest carries the profile fields a client submits after its
// first login. Validation rules are enforced in the auth package.
type SignUpRequest struct {
	Nickname       string   `json:"nickname" validate:"required,min=2,max=30"`
	BirthDate      string   `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Gender         string   `json:"gender" validate:"required,oneof=male female other"`
	Height         float64  `json:"height" validate:"required,gt=0,lte=300"`
	Weight         float64  `json:"weight" validate:"required,gt=0,lte=500"`
	MuscleMass     *float64 `json:"muscleMass" validate:"omitempty,gt=0"`
	SkillLevel     string   `json:"skillLevel" validate:"required,oneof=beginner intermediate advanced"`
	FavoriteSports []string `json:"favoriteSports" validate:"required,min=1,dive,required"`
}

// ProfileUpdateRequest is a partial update: nil fields are left untouched.
type ProfileUpdateRequest struct {
	Nickname       *string  `json:"nickname" validate:"omitempty,min=2,max=30"`
	Height         *float64 `json:"height" validate:"omitempty,gt=0,lte=300"`
	Weight         *float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
	MuscleMass     *float64 `json:"muscleMass" validate:"omitempty,gt=0"`
	SkillLevel     *string  `json:"skillLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	FavoriteSports []string `json:"favoriteSports" validate:"omitempty,min=1,dive,required"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}
