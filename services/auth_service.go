package services

import (
	"baro-server/auth"
	"baro-server/domain"
	serrors "baro-server/errors"
	"baro-server/repositories"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type IAuthService interface {
	Login(providerToken string) (LoginResult, error)
	SignUp(identity domain.Identity, req domain.SignUpRequest) (domain.Profile, error)
	Me(identity domain.Identity) (domain.Profile, error)
	UpdateMe(identity domain.Identity, req domain.ProfileUpdateRequest) (domain.Profile, error)
}

// LoginResult pairs the issued access token with the caller's profile.
// Profile is the empty template when the user has not signed up yet, so
// clients know to continue with /auth/signup.
type LoginResult struct {
	AccessToken string
	Profile     domain.Profile
	NeedsSignup bool
}

// AuthService implements login and profile CRUD on top of the profile
// store and the token manager.
//
// Provider verification is a stub: the Kakao token is accepted as-is and
// mapped to a stable user id, mirroring the mocked provider check of the
// production deployment. Swapping in a real provider client only touches
// verifyProvider.
type AuthService struct {
	profiles repositories.IProfileRepository
	tokens   *auth.TokenManager
	log      *slog.Logger
}

func NewAuthService(profiles repositories.IProfileRepository, tokens *auth.TokenManager, log *slog.Logger) *AuthService {
	return &AuthService{profiles: profiles, tokens: tokens, log: log}
}

func (s *AuthService) Login(providerToken string) (LoginResult, error) {
	providerID, err := verifyProvider(providerToken)
	if err != nil {
		return LoginResult{}, err
	}

	// A stable UUID per provider account; the same token suffix always
	// lands on the same user.
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(providerID)).String()

	token, err := s.tokens.Generate(domain.Identity{ID: userID})
	if err != nil {
		return LoginResult{}, err
	}

	profile, err := s.profiles.Get(userID)
	switch {
	case err == nil:
		return LoginResult{AccessToken: token, Profile: profile}, nil
	case errors.Is(err, serrors.ErrProfileNotFound):
		// First login: hand back the template and let the client sign up.
		return LoginResult{
			AccessToken: token,
			Profile:     domain.EmptyProfile(userID, providerID),
			NeedsSignup: true,
		}, nil
	default:
		return LoginResult{}, err
	}
}

func (s *AuthService) SignUp(identity domain.Identity, req domain.SignUpRequest) (domain.Profile, error) {
	if err := auth.ValidateSignUp(req); err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		ID:             identity.ID,
		ProviderID:     identity.Email,
		Nickname:       req.Nickname,
		BirthDate:      req.BirthDate,
		Gender:         req.Gender,
		Height:         req.Height,
		Weight:         req.Weight,
		MuscleMass:     req.MuscleMass,
		SkillLevel:     req.SkillLevel,
		FavoriteSports: req.FavoriteSports,
		Sportsmanship:  domain.DefaultSportsmanship,
	}
	return s.profiles.Create(profile)
}

func (s *AuthService) Me(identity domain.Identity) (domain.Profile, error) {
	return s.profiles.Get(identity.ID)
}

// UpdateMe applies the non-nil fields of the request. A location change
// also refreshes LocationUpdatedAt.
func (s *AuthService) UpdateMe(identity domain.Identity, req domain.ProfileUpdateRequest) (domain.Profile, error) {
	if err := auth.ValidateProfileUpdate(req); err != nil {
		return domain.Profile{}, err
	}

	return s.profiles.Update(identity.ID, func(p *domain.Profile) {
		if req.Nickname != nil {
			p.Nickname = *req.Nickname
		}
		if req.Height != nil {
			p.Height = *req.Height
		}
		if req.Weight != nil {
			p.Weight = *req.Weight
		}
		if req.MuscleMass != nil {
			p.MuscleMass = req.MuscleMass
		}
		if req.SkillLevel != nil {
			p.SkillLevel = *req.SkillLevel
		}
		if req.FavoriteSports != nil {
			p.FavoriteSports = req.FavoriteSports
		}
		if req.Latitude != nil || req.Longitude != nil {
			if req.Latitude != nil {
				p.Latitude = req.Latitude
			}
			if req.Longitude != nil {
				p.Longitude = req.Longitude
			}
			p.LocationUpdatedAt = domain.NowMillis()
		}
	})
}

// verifyProvider stands in for the external identity provider. It only
// rejects empty credentials; anything else maps deterministically to a
// provider account id.
func verifyProvider(providerToken string) (string, error) {
	token := strings.TrimSpace(providerToken)
	if token == "" {
		return "", serrors.ErrInvalidProviderToken
	}
	suffix := token
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "kakao_" + suffix, nil
}
