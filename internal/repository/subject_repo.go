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

type SubjectRepo interface {
	Create(ctx context.Context, subject *model.Subject) (string, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetAll(ctx context.Context) ([]*model.Subject, error)
	GetByGrade(ctx context.Context, grade int) ([]*model.Subject, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type subjectRepo struct {
	collection *mongo.Collection
}

func NewSubjectRepo(db *mongo.Database) SubjectRepo {
	return &subjectRepo{
		collection: db.Collection("subjects"),
	}
}

// EnsureIndexes creates the unique (name, grade) index
func (r *subjectRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "grade", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) (string, error) {
	if subject.ID == "" {
		subject.ID = primitive.NewObjectID().Hex()
	}
	subject.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, subject)
	if err != nil {
		return "", err
	}

	return subject.ID, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Subject not found
		}
		return nil, err
	}

	return &subject, nil
}

func (r *subjectRepo) GetAll(ctx context.Context) ([]*model.Subject, error) {
	return r.find(ctx, bson.M{})
}

func (r *subjectRepo) GetByGrade(ctx context.Context, grade int) ([]*model.Subject, error) {
	return r.find(ctx, bson.M{"grade": grade})
}

func (r *subjectRepo) find(ctx context.Context, filter bson.M) ([]*model.Subject, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []*model.Subject
	if err = cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}

	return subjects, nil
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
