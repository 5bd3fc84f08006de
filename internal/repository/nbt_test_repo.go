package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lyro/internal/model"
)

type NBTTestRepo interface {
	Create(ctx context.Context, test *model.NBTTest) (string, error)
	GetByID(ctx context.Context, id string) (*model.NBTTest, error)
	GetAll(ctx context.Context) ([]*model.NBTTest, error)
	GetAvailable(ctx context.Context, now time.Time) ([]*model.NBTTest, error)
	Update(ctx context.Context, test *model.NBTTest) error
	Delete(ctx context.Context, id string) error
}

type nbtTestRepo struct {
	collection *mongo.Collection
}

func NewNBTTestRepo(db *mongo.Database) NBTTestRepo {
	return &nbtTestRepo{
		collection: db.Collection("nbttests"),
	}
}

func (r *nbtTestRepo) Create(ctx context.Context, test *model.NBTTest) (string, error) {
	if test.ID == "" {
		test.ID = primitive.NewObjectID().Hex()
	}
	test.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, test)
	if err != nil {
		return "", err
	}

	return test.ID, nil
}

func (r *nbtTestRepo) GetByID(ctx context.Context, id string) (*model.NBTTest, error) {
	var test model.NBTTest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Test not found
		}
		return nil, err
	}

	return &test, nil
}

func (r *nbtTestRepo) GetAll(ctx context.Context) ([]*model.NBTTest, error) {
	return r.find(ctx, bson.M{})
}

// GetAvailable returns tests whose availability window covers now
func (r *nbtTestRepo) GetAvailable(ctx context.Context, now time.Time) ([]*model.NBTTest, error) {
	return r.find(ctx, bson.M{
		"availableFrom":  bson.M{"$lte": now},
		"availableUntil": bson.M{"$gte": now},
	})
}

func (r *nbtTestRepo) find(ctx context.Context, filter bson.M) ([]*model.NBTTest, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "availableFrom", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []*model.NBTTest
	if err = cursor.All(ctx, &tests); err != nil {
		return nil, err
	}

	return tests, nil
}

// Update replaces the whole test document. Embedded question edits go
// through the service as read-modify-replace on the parent document.
func (r *nbtTestRepo) Update(ctx context.Context, test *model.NBTTest) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": test.ID}, test)
	return err
}

func (r *nbtTestRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
