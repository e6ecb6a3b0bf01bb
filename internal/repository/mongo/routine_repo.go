package mongo

import (
	"context"
	"errors"
	"fmt"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/repository"
	"motionfit/routine-app/internal/textnorm"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineCollectionName = "weekly_routines"

// mongoRoutineRepository implements repository.RoutineRepository. Week
// documents are keyed by normalized-client-email + week Monday; merge
// semantics are shallow ($set on the days.<N> path replaces that day's whole
// entry list, nothing below it is merged).
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new weekly routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Get fetches one week document by key.
func (r *mongoRoutineRepository) Get(ctx context.Context, key string) (*domain.WeekDocument, error) {
	var doc domain.WeekDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Put fully replaces the week document at its key, creating it if absent.
func (r *mongoRoutineRepository) Put(ctx context.Context, doc *domain.WeekDocument) error {
	if doc.ClientEmail == "" || doc.WeekMonday == "" {
		return errors.New("week document requires client email and week monday")
	}
	if doc.Key == "" {
		doc.Key = domain.WeekKey(doc.ClientEmail, doc.WeekMonday)
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, opts)
	return err
}

// MergeDay replaces one day's entry list (and optionally its RPE scalar)
// inside the week document, upserting the document when it does not exist
// yet. Other days are untouched.
func (r *mongoRoutineRepository) MergeDay(ctx context.Context, key string, day int, entries []domain.ExerciseEntry, rpe *float64) error {
	if day < 1 || day > domain.MaxDays {
		return fmt.Errorf("day %d out of range", day)
	}

	set := bson.M{
		"days." + domain.DayKey(day): entries,
	}
	if rpe != nil {
		set["days."+domain.RPEKey(day)] = *rpe
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": set}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// QueryByClient returns every week document stored for a client email.
func (r *mongoRoutineRepository) QueryByClient(ctx context.Context, clientEmail string) ([]domain.WeekDocument, error) {
	filter := bson.M{"client_email": textnorm.Email(clientEmail)}
	findOptions := options.Find().SetSort(bson.D{{Key: "week_monday", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []domain.WeekDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// QueryByBlock returns every week document sharing a block ID, in Monday
// order.
func (r *mongoRoutineRepository) QueryByBlock(ctx context.Context, blockID string) ([]domain.WeekDocument, error) {
	filter := bson.M{"block_id": blockID}
	findOptions := options.Find().SetSort(bson.D{{Key: "week_monday", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []domain.WeekDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "client_email", Value: 1}, {Key: "week_monday", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "block_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
