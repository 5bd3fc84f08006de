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

type VoucherRepo interface {
	CreateBatch(ctx context.Context, vouchers []*model.Voucher) error
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)
	GetAll(ctx context.Context) ([]*model.Voucher, error)
	MarkUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type voucherRepo struct {
	collection *mongo.Collection
}

func NewVoucherRepo(db *mongo.Database) VoucherRepo {
	return &voucherRepo{
		collection: db.Collection("vouchers"),
	}
}

// EnsureIndexes creates the unique code index. This index is the actual
// safety net against generated code collisions.
func (r *voucherRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateBatch inserts a whole generation batch. A duplicate key error
// means a code collision and the caller regenerates the batch.
func (r *voucherRepo) CreateBatch(ctx context.Context, vouchers []*model.Voucher) error {
	docs := make([]interface{}, len(vouchers))
	for i, v := range vouchers {
		if v.ID == "" {
			v.ID = primitive.NewObjectID().Hex()
		}
		v.CreatedAt = time.Now()
		docs[i] = v
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *voucherRepo) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	var voucher model.Voucher
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&voucher)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Voucher not found
		}
		return nil, err
	}

	return &voucher, nil
}

func (r *voucherRepo) GetAll(ctx context.Context) ([]*model.Voucher, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vouchers []*model.Voucher
	if err = cursor.All(ctx, &vouchers); err != nil {
		return nil, err
	}

	return vouchers, nil
}

func (r *voucherRepo) MarkUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"code": code}, bson.M{
		"$set": bson.M{
			"status": model.VoucherUsed,
			"usedBy": usedBy,
			"usedAt": usedAt,
		},
	})
	return err
}
