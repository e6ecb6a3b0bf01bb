package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/repository"
	"motionfit/routine-app/internal/storage"
	"motionfit/routine-app/internal/textnorm"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("catalog exercise not found")
	ErrImplementNotFound = errors.New("implement not found")
	ErrValidationFailed  = errors.New("catalog exercise validation failed")
)

// CatalogService manages the exercise library and implement weight sets, and
// resolves an exercise name to its catalog record (with a viewable demo
// video URL when one is stored).
type CatalogService interface {
	UpsertExercise(ctx context.Context, name, muscleGroup, movementPattern, implementID, videoURL string) (*domain.CatalogExercise, error)
	ResolveExercise(ctx context.Context, name string) (*domain.CatalogExercise, error)
	ListExercises(ctx context.Context) ([]domain.CatalogExercise, error)
	ListImplements(ctx context.Context) ([]domain.Implement, error)
	WeightOptions(ctx context.Context, exerciseName string) ([]float64, error)
	DemoVideoURL(ctx context.Context, exerciseName string) (string, error)
	VideoUploadURL(ctx context.Context, exerciseName, contentType string) (string, error)
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	fileStorage storage.FileStorage
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository, fileStorage storage.FileStorage) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		fileStorage: fileStorage,
	}
}

// UpsertExercise writes a library exercise keyed by its normalized name, so
// re-submitting "Press Banca" and "press banca" hit the same record.
func (s *catalogService) UpsertExercise(ctx context.Context, name, muscleGroup, movementPattern, implementID, videoURL string) (*domain.CatalogExercise, error) {
	id := textnorm.ID(name)
	if id == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.CatalogExercise{
		ID:              id,
		Name:            name,
		MuscleGroup:     muscleGroup,
		MovementPattern: movementPattern,
		ImplementID:     implementID,
		VideoURL:        videoURL,
	}
	if existing, err := s.catalogRepo.GetExercise(ctx, id); err == nil {
		exercise.CreatedAt = existing.CreatedAt
	}

	if err := s.catalogRepo.UpsertExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// ResolveExercise looks up the catalog record for an exercise name.
func (s *catalogService) ResolveExercise(ctx context.Context, name string) (*domain.CatalogExercise, error) {
	exercise, err := s.catalogRepo.GetExercise(ctx, textnorm.ID(name))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises returns the full catalog.
func (s *catalogService) ListExercises(ctx context.Context) ([]domain.CatalogExercise, error) {
	return s.catalogRepo.ListExercises(ctx)
}

// ListImplements returns every implement.
func (s *catalogService) ListImplements(ctx context.Context) ([]domain.Implement, error) {
	return s.catalogRepo.ListImplements(ctx)
}

// WeightOptions returns the selectable weights for an exercise, sorted
// ascending. Free-weight exercises (or names not in the catalog) have no
// fixed options and return nil.
func (s *catalogService) WeightOptions(ctx context.Context, exerciseName string) ([]float64, error) {
	exercise, err := s.ResolveExercise(ctx, exerciseName)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if exercise.ImplementID == "" || exercise.ImplementID == domain.FreeWeightImplementID {
		return nil, nil
	}

	implement, err := s.catalogRepo.GetImplement(ctx, exercise.ImplementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImplementNotFound
		}
		return nil, err
	}

	weights := append([]float64(nil), implement.Weights...)
	sort.Float64s(weights)
	return weights, nil
}

// DemoVideoURL returns a short-lived viewable URL for the exercise's demo
// video. Stored http(s) URLs pass through; anything else is treated as an
// object key in the video bucket and presigned.
func (s *catalogService) DemoVideoURL(ctx context.Context, exerciseName string) (string, error) {
	exercise, err := s.ResolveExercise(ctx, exerciseName)
	if err != nil {
		return "", err
	}
	if exercise.VideoURL == "" {
		return "", nil
	}
	if len(exercise.VideoURL) >= 4 && exercise.VideoURL[:4] == "http" {
		return exercise.VideoURL, nil
	}
	if s.fileStorage == nil {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoURL, 15*time.Minute)
}

// VideoUploadURL returns a presigned PUT URL for uploading the exercise's
// demo video, and records the object key on the catalog record so DemoVideoURL
// finds it afterwards.
func (s *catalogService) VideoUploadURL(ctx context.Context, exerciseName, contentType string) (string, error) {
	exercise, err := s.ResolveExercise(ctx, exerciseName)
	if err != nil {
		return "", err
	}
	if s.fileStorage == nil {
		return "", errors.New("file storage is not configured")
	}

	objectKey := "videos/" + exercise.ID
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 15*time.Minute)
	if err != nil {
		return "", err
	}

	exercise.VideoURL = objectKey
	if err := s.catalogRepo.UpsertExercise(ctx, exercise); err != nil {
		return "", err
	}
	return url, nil
}
