package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepo wraps one catalog collection (movies, series, liveTV). Item
// payloads are uploader-supplied and stored as-is, so documents stay schema-less.
type CatalogRepo struct {
	col *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database, collection string) *CatalogRepo {
	return &CatalogRepo{col: db.Collection(collection)}
}

func (r *CatalogRepo) Insert(ctx context.Context, doc bson.M) (string, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (r *CatalogRepo) ListAll(ctx context.Context) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []bson.M
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepo) DeleteByID(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
