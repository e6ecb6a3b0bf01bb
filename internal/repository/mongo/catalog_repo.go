package mongo

import (
	"context"
	"errors"
	"time"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName  = "exercise_catalog"
	implementCollectionName = "implements"
)

// mongoCatalogRepository implements repository.CatalogRepository.
type mongoCatalogRepository struct {
	exercises  *mongo.Collection
	implements *mongo.Collection
}

// NewMongoCatalogRepository creates a new catalog repository.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		exercises:  db.Collection(exerciseCollectionName),
		implements: db.Collection(implementCollectionName),
	}
}

// UpsertExercise writes a catalog exercise under its normalized-name ID.
// The catalog was historically bulk-loaded the same way, so re-upserting an
// existing name replaces it.
func (r *mongoCatalogRepository) UpsertExercise(ctx context.Context, exercise *domain.CatalogExercise) error {
	if exercise.ID == "" || exercise.Name == "" {
		return errors.New("catalog exercise requires id and name")
	}
	now := time.Now().UTC()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = now
	}
	exercise.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.exercises.ReplaceOne(ctx, bson.M{"_id": exercise.ID}, exercise, opts)
	return err
}

// GetExercise retrieves a catalog exercise by its ID.
func (r *mongoCatalogRepository) GetExercise(ctx context.Context, id string) (*domain.CatalogExercise, error) {
	var exercise domain.CatalogExercise
	err := r.exercises.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListExercises returns the full catalog sorted by name.
func (r *mongoCatalogRepository) ListExercises(ctx context.Context) ([]domain.CatalogExercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.exercises.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.CatalogExercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetImplement retrieves an implement (equipment weight set) by ID.
func (r *mongoCatalogRepository) GetImplement(ctx context.Context, id string) (*domain.Implement, error) {
	var implement domain.Implement
	err := r.implements.FindOne(ctx, bson.M{"_id": id}).Decode(&implement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &implement, nil
}

// ListImplements returns every implement.
func (r *mongoCatalogRepository) ListImplements(ctx context.Context) ([]domain.Implement, error) {
	cursor, err := r.implements.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var implements []domain.Implement
	if err = cursor.All(ctx, &implements); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return implements, nil
}
