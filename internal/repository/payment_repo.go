package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cyco-backend/internal/models"
)

type PaymentRepo struct {
	col *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{col: db.Collection("payments")}
}

func (r *PaymentRepo) Insert(ctx context.Context, p *models.Payment) error {
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
