package service

import (
	"context"
	"errors"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAthleteNotFound        = errors.New("athlete user not found")
	ErrAthleteNotRole         = errors.New("user found but is not an athlete")
	ErrAthleteAlreadyAssigned = errors.New("athlete is already assigned to a trainer")
	ErrAthleteNotManaged      = errors.New("athlete is not managed by this trainer")
)

// TrainerService manages the trainer's athlete roster.
type TrainerService interface {
	AddAthleteByEmail(ctx context.Context, trainerID primitive.ObjectID, athleteEmail string) (*domain.User, error)
	GetManagedAthletes(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo repository.UserRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(userRepo repository.UserRepository) TrainerService {
	return &trainerService{
		userRepo: userRepo,
	}
}

// AddAthleteByEmail finds an athlete by email and assigns them to the trainer.
func (s *trainerService) AddAthleteByEmail(ctx context.Context, trainerID primitive.ObjectID, athleteEmail string) (*domain.User, error) {
	// 1. Validate input
	if trainerID == primitive.NilObjectID || athleteEmail == "" {
		return nil, errors.New("trainer ID and athlete email are required")
	}

	// 2. Find the potential athlete user
	athlete, err := s.userRepo.GetByEmail(ctx, athleteEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	// 3. Verify the user is actually an athlete
	if !athlete.IsAthlete() {
		return nil, ErrAthleteNotRole
	}

	// 4. Check if the athlete is already assigned to any trainer
	if athlete.TrainerID != nil && *athlete.TrainerID != primitive.NilObjectID {
		if *athlete.TrainerID == trainerID {
			// Already managed by this trainer, treat as success
			return athlete, nil
		}
		return nil, ErrAthleteAlreadyAssigned
	}

	// 5. Assign athlete to trainer (update both records)
	err = s.userRepo.AddClientIDToTrainer(ctx, trainerID, athlete.ID)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.SetTrainerForClient(ctx, athlete.ID, trainerID)
	if err != nil {
		return nil, err
	}

	athlete.TrainerID = &trainerID
	athlete.PasswordHash = ""
	return athlete, nil
}

// GetManagedAthletes retrieves the list of athletes managed by the trainer.
func (s *trainerService) GetManagedAthletes(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	athletes, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range athletes {
		athletes[i].PasswordHash = ""
	}
	return athletes, nil
}
