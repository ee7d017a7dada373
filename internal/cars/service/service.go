package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/primeauto/showroom-api/internal/cars"
	"github.com/primeauto/showroom-api/internal/cars/repository"
	"github.com/primeauto/showroom-api/pkg/logger"
)

var (
	ErrNotFound             = errors.New("car not found")
	ErrValidation           = errors.New("invalid car fields")
	ErrNoImages             = errors.New("at least one image is required")
	ErrUnsupportedImageType = errors.New("only JPEG/PNG images are allowed")
)

// allowed upload content types, mirroring the storefront's accepted formats
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ImageStore is the subset of the image store the inventory service needs.
type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (url string, assetID string, err error)
	Delete(ctx context.Context, assetID string) error
}

// ImageUpload is one inbound image file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type CreateInput struct {
	Name        string
	Price       float64
	Description string
	Images      []ImageUpload
}

// UpdateInput carries partial updates: nil scalar pointers leave the stored
// value untouched.
type UpdateInput struct {
	Name           *string
	Price          *float64
	Description    *string
	NewImages      []ImageUpload
	RemoveAssetIDs []string
}

// Service mediates between the HTTP layer, the image store and the car
// collection, keeping a car's images array consistent with what exists
// remotely. The two writes are not transactional: uploads settle before the
// document is persisted, and deletions are best-effort cleanup.
type Service struct {
	repo  repository.Repository
	store ImageStore
}

func NewService(repo repository.Repository, store ImageStore) *Service {
	return &Service{repo: repo, store: store}
}

// Create uploads every image and persists the car only when all uploads
// succeeded. On a partial upload failure the already-stored assets are
// removed again (best-effort) and nothing is persisted.
func (s *Service) Create(ctx context.Context, in CreateInput) (*cars.Car, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(in.Images) == 0 {
		return nil, ErrNoImages
	}
	images, err := s.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	car := &cars.Car{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Images:      images,
	}
	created, err := s.repo.Create(ctx, car)
	if err != nil {
		// document write failed after the uploads: undo them
		s.removeAssets(ctx, assetIDs(images))
		return nil, fmt.Errorf("persist car: %w", err)
	}
	return created, nil
}

// Update applies partial field updates, appends newly uploaded images and
// removes the entries named in RemoveAssetIDs. Remote deletion failures do
// not abort the update; they are returned as cleanup errors for the caller
// to report.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*cars.Car, []string, error) {
	car, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if in.Name != nil {
		car.Name = *in.Name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		car.Price = *in.Price
	}
	if in.Description != nil {
		car.Description = *in.Description
	}

	if len(in.NewImages) > 0 {
		added, err := s.uploadAll(ctx, in.NewImages)
		if err != nil {
			return nil, nil, err
		}
		car.Images = append(car.Images, added...)
	}

	var cleanupErrs []string
	if len(in.RemoveAssetIDs) > 0 {
		remove := make(map[string]bool, len(in.RemoveAssetIDs))
		for _, id := range in.RemoveAssetIDs {
			remove[id] = true
			if err := s.store.Delete(ctx, id); err != nil {
				logger.Warnf("failed to delete asset %s: %v", id, err)
				cleanupErrs = append(cleanupErrs, fmt.Sprintf("asset %s: %v", id, err))
			}
		}
		// the entry leaves the document whether or not the remote delete worked
		kept := car.Images[:0]
		for _, img := range car.Images {
			if !remove[img.AssetID] {
				kept = append(kept, img)
			}
		}
		car.Images = kept
	}

	if err := s.repo.Replace(ctx, car); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("persist car: %w", err)
	}
	return car, cleanupErrs, nil
}

// Delete removes the car document. Its assets are deleted from the image
// store first, but a failing asset deletion never blocks the document
// removal; stale remote objects beat stale inventory entries.
func (s *Service) Delete(ctx context.Context, id string) error {
	car, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.removeAssets(ctx, assetIDs(car.Images))
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*cars.Car, error) {
	car, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *Service) List(ctx context.Context) ([]*cars.Car, error) {
	return s.repo.List(ctx)
}

// uploadAll stores every file in submission order. If any upload fails the
// ones that already succeeded are removed again and the batch error is
// returned.
func (s *Service) uploadAll(ctx context.Context, files []ImageUpload) ([]cars.Image, error) {
	for _, f := range files {
		if !allowedImageTypes[f.ContentType] {
			return nil, fmt.Errorf("%w: got %s", ErrUnsupportedImageType, f.ContentType)
		}
	}
	images := make([]cars.Image, 0, len(files))
	for _, f := range files {
		url, assetID, err := s.store.Upload(ctx, f.Filename, f.Reader, f.Size, f.ContentType)
		if err != nil {
			s.removeAssets(ctx, assetIDs(images))
			return nil, fmt.Errorf("upload %s: %w", f.Filename, err)
		}
		images = append(images, cars.Image{URL: url, AssetID: assetID})
	}
	return images, nil
}

func (s *Service) removeAssets(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			logger.Warnf("failed to delete asset %s: %v", id, err)
		}
	}
}

func assetIDs(images []cars.Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.AssetID)
	}
	return ids
}
