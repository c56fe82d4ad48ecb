package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LogRepo serves the flat append-mostly collections (events, feedback, history,
// manageSubscriptions). Payloads are caller-shaped, so documents are kept opaque.
type LogRepo struct {
	col *mongo.Collection
}

func NewLogRepo(db *mongo.Database, collection string) *LogRepo {
	return &LogRepo{col: db.Collection(collection)}
}

func (r *LogRepo) Insert(ctx context.Context, doc bson.M) (string, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (r *LogRepo) ListAll(ctx context.Context) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *LogRepo) UpdateByID(ctx context.Context, id string, patch bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	delete(patch, "_id")
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LogRepo) DeleteByID(ctx context.Context, id string) error {
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
