package repository

import (
	"context"

	"motionfit/routine-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddClientIDToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error
}

// CatalogRepository defines the interface for the exercise library and the
// implement (equipment) weight sets.
type CatalogRepository interface {
	UpsertExercise(ctx context.Context, exercise *domain.CatalogExercise) error
	GetExercise(ctx context.Context, id string) (*domain.CatalogExercise, error)
	ListExercises(ctx context.Context) ([]domain.CatalogExercise, error)
	GetImplement(ctx context.Context, id string) (*domain.Implement, error)
	ListImplements(ctx context.Context) ([]domain.Implement, error)
}

// RoutineRepository is the document store for weekly routine documents. It is
// deliberately narrow: get by key, full-replace put, shallow merge of one
// day's entries, and an equality query by client. Anything smarter (deep
// merges, transactions across weeks) is out of contract.
type RoutineRepository interface {
	// Get fetches one week document by its key. ErrNotFound when absent.
	Get(ctx context.Context, key string) (*domain.WeekDocument, error)

	// Put fully replaces (or creates) the week document at its key.
	// Re-creating a block for the same client/Monday overwrites: callers own
	// that sharp edge.
	Put(ctx context.Context, doc *domain.WeekDocument) error

	// MergeDay replaces one day's entry list inside the week document,
	// leaving other days untouched, creating the document if needed. When
	// rpe is non-nil the day's RPE scalar is written in the same update.
	MergeDay(ctx context.Context, key string, day int, entries []domain.ExerciseEntry, rpe *float64) error

	// QueryByClient returns every week document stored for the client email
	// (exact equality on the normalized address).
	QueryByClient(ctx context.Context, clientEmail string) ([]domain.WeekDocument, error)

	// QueryByBlock returns every week document sharing a block ID.
	QueryByBlock(ctx context.Context, blockID string) ([]domain.WeekDocument, error)
}
