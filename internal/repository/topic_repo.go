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

type TopicRepo interface {
	Create(ctx context.Context, topic *model.Topic) (string, error)
	GetByID(ctx context.Context, id string) (*model.Topic, error)
	GetBySubject(ctx context.Context, subjectID string) ([]*model.Topic, error)
	GetByGrade(ctx context.Context, grade int) ([]*model.Topic, error)
	Delete(ctx context.Context, id string) error
	DeleteBySubject(ctx context.Context, subjectID string) error
}

type topicRepo struct {
	collection *mongo.Collection
}

func NewTopicRepo(db *mongo.Database) TopicRepo {
	return &topicRepo{
		collection: db.Collection("topics"),
	}
}

func (r *topicRepo) Create(ctx context.Context, topic *model.Topic) (string, error) {
	if topic.ID == "" {
		topic.ID = primitive.NewObjectID().Hex()
	}
	topic.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, topic)
	if err != nil {
		return "", err
	}

	return topic.ID, nil
}

func (r *topicRepo) GetByID(ctx context.Context, id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&topic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Topic not found
		}
		return nil, err
	}

	return &topic, nil
}

func (r *topicRepo) GetBySubject(ctx context.Context, subjectID string) ([]*model.Topic, error) {
	return r.find(ctx, bson.M{"subject": subjectID})
}

func (r *topicRepo) GetByGrade(ctx context.Context, grade int) ([]*model.Topic, error) {
	return r.find(ctx, bson.M{"grade": grade})
}

func (r *topicRepo) find(ctx context.Context, filter bson.M) ([]*model.Topic, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var topics []*model.Topic
	if err = cursor.All(ctx, &topics); err != nil {
		return nil, err
	}

	return topics, nil
}

func (r *topicRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteBySubject removes every topic under a subject, used when the
// subject itself is deleted
func (r *topicRepo) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"subject": subjectID})
	return err
}
