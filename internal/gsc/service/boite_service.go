package service

import (
	"context"
	"strings"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// Flights longer than this get a pharmacy box on top of the doctor box.
const pharmacieDureeMinutes = 240

// BoiteService medical box inventory and per-flight recommendation.
type BoiteService struct {
	boiteRepo *repository.BoiteRepository
	volRepo   *repository.VolRepository
}

func NewBoiteService(boiteRepo *repository.BoiteRepository, volRepo *repository.VolRepository) *BoiteService {
	return &BoiteService{boiteRepo: boiteRepo, volRepo: volRepo}
}

func (s *BoiteService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BoiteMedicale, int64, error) {
	return s.boiteRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *BoiteService) Get(ctx context.Context, id string) (*entity.BoiteMedicale, error) {
	return s.boiteRepo.FindByID(ctx, id)
}

// CreateBoiteRequest creation payload.
type CreateBoiteRequest struct {
	Reference      string    `json:"reference" binding:"required"`
	Type           string    `json:"type" binding:"required"`
	Description    string    `json:"description"`
	DateExpiration time.Time `json:"date_expiration" binding:"required"`
}

func (s *BoiteService) Create(ctx context.Context, req *CreateBoiteRequest) (*entity.BoiteMedicale, error) {
	b := &entity.BoiteMedicale{
		ID:             generateID(),
		Reference:      req.Reference,
		Type:           req.Type,
		Status:         entity.BoiteStatusDisponible,
		Description:    req.Description,
		DateExpiration: req.DateExpiration,
		IsActive:       true,
	}
	if err := s.boiteRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBoiteRequest partial update payload.
type UpdateBoiteRequest struct {
	Type           *string    `json:"type"`
	Status         *string    `json:"status"`
	Description    *string    `json:"description"`
	DateExpiration *time.Time `json:"date_expiration"`
	IsActive       *bool      `json:"is_active"`
}

func (s *BoiteService) Update(ctx context.Context, id string, req *UpdateBoiteRequest) (*entity.BoiteMedicale, error) {
	b, err := s.boiteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		b.Type = *req.Type
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.DateExpiration != nil {
		b.DateExpiration = *req.DateExpiration
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.boiteRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BoiteService) Delete(ctx context.Context, id string) error {
	if _, err := s.boiteRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.boiteRepo.Delete(ctx, id)
}

// RecommendForVol picks boxes for a flight: every flight gets a doctor box,
// flights over four hours add a pharmacy box, international flights (or
// far-off destinations) add a first-aid kit. Only available unexpired boxes
// are considered.
func (s *BoiteService) RecommendForVol(ctx context.Context, volID string) ([]entity.BoiteMedicale, error) {
	vol, err := s.volRepo.FindByID(ctx, volID)
	if err != nil {
		return nil, err
	}
	available, err := s.boiteRepo.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}

	return RecommendBoites(vol, available), nil
}

// RecommendBoites pure recommendation over an available pool.
func RecommendBoites(vol *entity.Vol, available []entity.BoiteMedicale) []entity.BoiteMedicale {
	firstOfType := func(t string) *entity.BoiteMedicale {
		for i := range available {
			if available[i].Type == t {
				return &available[i]
			}
		}
		return nil
	}

	var recommendations []entity.BoiteMedicale

	if doctor := firstOfType(entity.TypeBoiteDoctor); doctor != nil {
		recommendations = append(recommendations, *doctor)
	}

	if vol.DurationMinutes > pharmacieDureeMinutes {
		if pharmacie := firstOfType(entity.TypeBoitePharmacie); pharmacie != nil {
			recommendations = append(recommendations, *pharmacie)
		}
	}

	if strings.Contains(vol.Zone, "International") || len(vol.Destination) > 10 {
		if kit := firstOfType(entity.TypeKitPremierSecours); kit != nil {
			recommendations = append(recommendations, *kit)
		}
	}

	return recommendations
}

// AssignToVol records the assignment and flips the box to assignee.
func (s *BoiteService) AssignToVol(ctx context.Context, volID, boiteID, userID string) (*entity.VolBoiteMedicale, error) {
	if _, err := s.volRepo.FindByID(ctx, volID); err != nil {
		return nil, err
	}
	boite, err := s.boiteRepo.FindByID(ctx, boiteID)
	if err != nil {
		return nil, err
	}
	if boite.Status != entity.BoiteStatusDisponible {
		return nil, ErrInvalidState
	}

	link := &entity.VolBoiteMedicale{
		ID:              generateID(),
		VolID:           volID,
		BoiteMedicaleID: boiteID,
		DateAssignation: time.Now(),
		AssignePar:      userID,
	}
	if err := s.boiteRepo.Assign(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}
