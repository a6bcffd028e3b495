package service

import (
	"context"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// VolService flight management.
type VolService struct {
	volRepo *repository.VolRepository
}

func NewVolService(volRepo *repository.VolRepository) *VolService {
	return &VolService{volRepo: volRepo}
}

func (s *VolService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vol, int64, error) {
	return s.volRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *VolService) Get(ctx context.Context, id string) (*entity.Vol, error) {
	return s.volRepo.FindByID(ctx, id)
}

// CreateVolRequest creation payload.
type CreateVolRequest struct {
	FlightNumber        string    `json:"flight_number" binding:"required"`
	FlightDate          time.Time `json:"flight_date" binding:"required"`
	DepartureTime       string    `json:"departure_time"`
	ArrivalTime         string    `json:"arrival_time"`
	Aircraft            string    `json:"aircraft"`
	Origin              string    `json:"origin"`
	Destination         string    `json:"destination"`
	Zone                string    `json:"zone" binding:"required"`
	EstimatedPassengers int       `json:"estimated_passengers"`
	ActualPassengers    int       `json:"actual_passengers"`
	DurationMinutes     int       `json:"duration_minutes"`
	Season              string    `json:"season"`
}

func (s *VolService) Create(ctx context.Context, req *CreateVolRequest) (*entity.Vol, error) {
	vol := &entity.Vol{
		ID:                  generateID(),
		FlightNumber:        req.FlightNumber,
		FlightDate:          req.FlightDate,
		DepartureTime:       req.DepartureTime,
		ArrivalTime:         req.ArrivalTime,
		Aircraft:            req.Aircraft,
		Origin:              req.Origin,
		Destination:         req.Destination,
		Zone:                req.Zone,
		EstimatedPassengers: req.EstimatedPassengers,
		ActualPassengers:    req.ActualPassengers,
		DurationMinutes:     req.DurationMinutes,
		Season:              req.Season,
	}
	if err := s.volRepo.Create(ctx, vol); err != nil {
		return nil, err
	}
	return vol, nil
}

// UpdateVolRequest partial update payload.
type UpdateVolRequest struct {
	FlightNumber        *string    `json:"flight_number"`
	FlightDate          *time.Time `json:"flight_date"`
	DepartureTime       *string    `json:"departure_time"`
	ArrivalTime         *string    `json:"arrival_time"`
	Aircraft            *string    `json:"aircraft"`
	Origin              *string    `json:"origin"`
	Destination         *string    `json:"destination"`
	Zone                *string    `json:"zone"`
	EstimatedPassengers *int       `json:"estimated_passengers"`
	ActualPassengers    *int       `json:"actual_passengers"`
	DurationMinutes     *int       `json:"duration_minutes"`
	Season              *string    `json:"season"`
}

func (s *VolService) Update(ctx context.Context, id string, req *UpdateVolRequest) (*entity.Vol, error) {
	vol, err := s.volRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FlightNumber != nil {
		vol.FlightNumber = *req.FlightNumber
	}
	if req.FlightDate != nil {
		vol.FlightDate = *req.FlightDate
	}
	if req.DepartureTime != nil {
		vol.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		vol.ArrivalTime = *req.ArrivalTime
	}
	if req.Aircraft != nil {
		vol.Aircraft = *req.Aircraft
	}
	if req.Origin != nil {
		vol.Origin = *req.Origin
	}
	if req.Destination != nil {
		vol.Destination = *req.Destination
	}
	if req.Zone != nil {
		vol.Zone = *req.Zone
	}
	if req.EstimatedPassengers != nil {
		vol.EstimatedPassengers = *req.EstimatedPassengers
	}
	if req.ActualPassengers != nil {
		vol.ActualPassengers = *req.ActualPassengers
	}
	if req.DurationMinutes != nil {
		vol.DurationMinutes = *req.DurationMinutes
	}
	if req.Season != nil {
		vol.Season = *req.Season
	}

	if err := s.volRepo.Update(ctx, vol); err != nil {
		return nil, err
	}
	return vol, nil
}

func (s *VolService) Delete(ctx context.Context, id string) error {
	if _, err := s.volRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.volRepo.Delete(ctx, id)
}
