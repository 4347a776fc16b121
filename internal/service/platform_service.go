package service

import (
	"github.com/maheshrc27/story-scheduler/internal/models"
)

type PlatformService interface {
	List() []models.Platform
	Get(id string) (models.Platform, bool)
	Valid(id string) bool
}

type platformService struct {
	platforms []models.Platform
}

// NewPlatformService returns the fixed registry of supported platforms.
func NewPlatformService() PlatformService {
	return &platformService{
		platforms: []models.Platform{
			{ID: models.PlatformFacebook, Name: "Facebook", Icon: "facebook", Color: "#1877F2"},
			{ID: models.PlatformInstagram, Name: "Instagram", Icon: "instagram", Color: "#E1306C"},
			{ID: models.PlatformYoutube, Name: "YouTube", Icon: "youtube", Color: "#FF0000"},
		},
	}
}

func (s *platformService) List() []models.Platform {
	return append([]models.Platform(nil), s.platforms...)
}

func (s *platformService) Get(id string) (models.Platform, bool) {
	for _, p := range s.platforms {
		if p.ID == id {
			return p, true
		}
	}
	return models.Platform{}, false
}

func (s *platformService) Valid(id string) bool {
	_, ok := s.Get(id)
	return ok
}
