package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/primeauto/showroom-api/internal/bookings"
	"github.com/primeauto/showroom-api/internal/bookings/repository"
	"github.com/primeauto/showroom-api/internal/cars"
	carservice "github.com/primeauto/showroom-api/internal/cars/service"
	"github.com/primeauto/showroom-api/pkg/logger"
)

var (
	ErrValidation  = errors.New("all required fields must be provided")
	ErrCarNotFound = errors.New("car not found in showroom")
	ErrNotFound    = errors.New("booking not found")
)

// CarDirectory resolves car ids; satisfied by the car inventory service.
type CarDirectory interface {
	Get(ctx context.Context, id string) (*cars.Car, error)
}

type CreateInput struct {
	Name          string
	Email         string
	Phone         string
	PreferredDate string
	Message       string
	CarID         string
}

// Service records and lists test-drive requests. It is read-only with
// respect to the image store.
type Service struct {
	repo    repository.Repository
	carsDir CarDirectory
}

func NewService(repo repository.Repository, carsDir CarDirectory) *Service {
	return &Service{repo: repo, carsDir: carsDir}
}

// Create validates the request and persists it. The referenced car must
// exist; a booking never points at a nonexistent car.
func (s *Service) Create(ctx context.Context, in CreateInput) (*bookings.Booking, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.PreferredDate == "" || in.CarID == "" {
		return nil, ErrValidation
	}
	car, err := s.carsDir.Get(ctx, in.CarID)
	if err != nil {
		if errors.Is(err, carservice.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("resolve car: %w", err)
	}
	b := &bookings.Booking{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		CarID:         car.ID,
	}
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}
	return created, nil
}

// List returns all bookings newest-first with their car expanded for the
// admin dashboard. A booking whose car was deleted in the meantime is kept,
// with a nil car.
func (s *Service) List(ctx context.Context) ([]*bookings.WithCar, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*bookings.WithCar, 0, len(list))
	for _, b := range list {
		wc := &bookings.WithCar{Booking: *b}
		car, err := s.carsDir.Get(ctx, b.CarID.Hex())
		if err != nil && !errors.Is(err, carservice.ErrNotFound) {
			logger.Warnf("expand booking %s: %v", b.ID.Hex(), err)
		}
		wc.Car = car
		out = append(out, wc)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
