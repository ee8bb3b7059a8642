package domain

// DefaultSportsmanship is the server-seeded rating for a fresh profile.
// Clients can never write this field directly.
const DefaultSportsmanship = 36.5

// Identity is the outcome of a verified bearer credential.
type Identity struct {
	ID    string
	Email string
}

// Profile is the persisted user record behind the auth endpoints.
type Profile struct {
	ID                string   `json:"id"`
	ProviderID        string   `json:"providerId,omitempty"`
	Nickname          string   `json:"nickname"`
	BirthDate         string   `json:"birthDate"`
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"`
	Weight            float64  `json:"weight"`
	MuscleMass        *float64 `json:"muscleMass,omitempty"`
	SkillLevel        string   `json:"skillLevel"`
	FavoriteSports    []string `json:"favoriteSports"`
	Sportsmanship     float64  `json:"sportsmanship"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	LocationUpdatedAt int64    `json:"locationUpdatedAt,omitempty"`
}

// EmptyProfile is the template returned on first login, before signup.
func EmptyProfile(userID, providerID string) Profile {
	return Profile{
		ID:             userID,
		ProviderID:     providerID,
		FavoriteSports: []string{},
		Sportsmanship:  DefaultSportsmanship,
	}
}
