package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cyco-backend/internal/models"
)

// VoteDirection selects which voter set a vote lands in.
type VoteDirection string

const (
	Upvote   VoteDirection = "upvote"
	Downvote VoteDirection = "downvote"
)

type ForumRepo struct {
	col *mongo.Collection
}

func NewForumRepo(db *mongo.Database) *ForumRepo {
	return &ForumRepo{col: db.Collection("forumQueries")}
}

func (r *ForumRepo) Insert(ctx context.Context, q *models.ForumQuery) (string, error) {
	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (r *ForumRepo) ListAll(ctx context.Context) ([]models.ForumQuery, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var queries []models.ForumQuery
	if err := cur.All(ctx, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

func (r *ForumRepo) FindByID(ctx context.Context, id string) (*models.ForumQuery, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var q models.ForumQuery
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ForumRepo) IncrementViews(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CastVote adds the voter to the requested direction and retracts any vote in the
// opposite direction, both in one document update so a flip can never leave the
// voter in both sets.
func (r *ForumRepo) CastVote(ctx context.Context, id, voter string, dir VoteDirection) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	target, opposite := "upvotes", "downvotes"
	if dir == Downvote {
		target, opposite = "downvotes", "upvotes"
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$addToSet": bson.M{target: voter},
		"$pull":     bson.M{opposite: voter},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ForumRepo) AppendComment(ctx context.Context, id string, comment models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type ReportRepo struct {
	col *mongo.Collection
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	return &ReportRepo{col: db.Collection("queryReports")}
}

// ExistsFor reports whether this reporter already flagged this query.
func (r *ReportRepo) ExistsFor(ctx context.Context, queryID, reporter string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(queryID)
	if err != nil {
		return false, ErrNotFound
	}
	count, err := r.col.CountDocuments(ctx, bson.M{"queryId": objID, "reporter": reporter})
	return count > 0, err
}

func (r *ReportRepo) Insert(ctx context.Context, queryID, reporter, reason string) error {
	objID, err := primitive.ObjectIDFromHex(queryID)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.col.InsertOne(ctx, models.QueryReport{
		QueryID:    objID,
		Reporter:   reporter,
		Reason:     reason,
		ReportedAt: time.Now(),
	})
	return err
}
