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

type SchoolRepo interface {
	Create(ctx context.Context, school *model.School) (string, error)
	GetAll(ctx context.Context) ([]*model.School, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type schoolRepo struct {
	collection *mongo.Collection
}

func NewSchoolRepo(db *mongo.Database) SchoolRepo {
	return &schoolRepo{
		collection: db.Collection("schools"),
	}
}

// EnsureIndexes creates the unique name index
func (r *schoolRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) (string, error) {
	if school.ID == "" {
		school.ID = primitive.NewObjectID().Hex()
	}
	school.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, school)
	if err != nil {
		return "", err
	}

	return school.ID, nil
}

func (r *schoolRepo) GetAll(ctx context.Context) ([]*model.School, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schools []*model.School
	if err = cursor.All(ctx, &schools); err != nil {
		return nil, err
	}

	return schools, nil
}

func (r *schoolRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
