package repository

import (
	"context"
	"errors"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSnapshotRepository implements SnapshotRepository on two collections:
// an append-only snapshot history and a one-doc-per-flight milestone state
// merged with $addToSet, so the fired set can only grow even under
// concurrent ticks.
type MongoSnapshotRepository struct {
	snapshots  *mongo.Collection
	milestones *mongo.Collection
}

// milestoneStateDoc is the persisted fired-milestone set for one flight.
type milestoneStateDoc struct {
	FlightKey string    `bson:"flightKey"`
	Fired     []string  `bson:"fired"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoSnapshotRepository creates a new snapshot repository
func NewMongoSnapshotRepository(db *mongo.Database) repository.SnapshotRepository {
	snapshots := db.Collection("flight_snapshots")
	milestones := db.Collection("milestone_states")

	ctx := context.Background()
	historyIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "flightKey", Value: 1}, {Key: "fetchedAt", Value: -1}},
	}
	snapshots.Indexes().CreateOne(ctx, historyIndex)

	stateIndex := mongo.IndexModel{
		Keys:    bson.M{"flightKey": 1},
		Options: options.Index().SetUnique(true),
	}
	milestones.Indexes().CreateOne(ctx, stateIndex)

	return &MongoSnapshotRepository{
		snapshots:  snapshots,
		milestones: milestones,
	}
}

// GetLatest returns the newest snapshot and fired milestones for a flight.
// A flight with no history yields (nil, nil, nil).
func (r *MongoSnapshotRepository) GetLatest(ctx context.Context, flightKey string) (*entity.FlightSnapshot, entity.MilestoneState, error) {
	opts := options.FindOne().SetSort(bson.M{"fetchedAt": -1})

	var snapshot entity.FlightSnapshot
	err := r.snapshots.FindOne(ctx, bson.M{"flightKey": flightKey}, opts).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var state milestoneStateDoc
	err = r.milestones.FindOne(ctx, bson.M{"flightKey": flightKey}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &snapshot, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	fired := make(entity.MilestoneState, 0, len(state.Fired))
	for _, tag := range state.Fired {
		fired = append(fired, entity.MilestoneTag(tag))
	}
	return &snapshot, fired, nil
}

// Append inserts a new snapshot into the history and merges the fired
// milestone set into the flight's state document.
func (r *MongoSnapshotRepository) Append(ctx context.Context, flightKey string, snapshot *entity.FlightSnapshot, fired entity.MilestoneState) error {
	if snapshot.ID == "" {
		snapshot.ID = primitive.NewObjectID().Hex()
	}
	snapshot.FlightKey = flightKey
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	if _, err := r.snapshots.InsertOne(ctx, snapshot); err != nil {
		return err
	}

	tags := make([]string, 0, len(fired))
	for _, tag := range fired {
		tags = append(tags, string(tag))
	}

	update := bson.M{
		"$addToSet": bson.M{"fired": bson.M{"$each": tags}},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.milestones.UpdateOne(ctx, bson.M{"flightKey": flightKey}, update, opts)
	return err
}
