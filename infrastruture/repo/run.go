package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunRepo archives run summaries in MongoDB.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run in the repository.
// If the run already exists, it updates the existing record.
// If the run does not exist, it adds a new record.
func (r *RunRepo) Save(ctx context.Context, run *domain.Run) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	set := bson.M{
		"kind":        run.Kind,
		"scenario":    run.Scenario,
		"width":       run.Width,
		"height":      run.Height,
		"ticks":       run.Ticks,
		"goalTick":    run.GoalTick,
		"performance": run.Performance,
		"totalReward": run.TotalReward,
		"startedAt":   run.StartedAt,
		"updatedAt":   time.Now(),
	}
	if !run.FinishedAt.IsZero() {
		set["finishedAt"] = run.FinishedAt
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set}, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a run by its ID.
// Returns domain.ErrRunNotFound if the run is not found or an error if an unexpected error occurs.
func (r *RunRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run domain.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRunNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
