package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cyco-backend/internal/models"
)

// ErrNotFound is returned when a filter matched no document.
var ErrNotFound = errors.New("document not found")

// WishlistResult reports the outcome of a wishlist add.
type WishlistResult int

const (
	WishlistAdded WishlistResult = iota
	WishlistAlreadyPresent
	WishlistUserMissing
)

type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

func (r *UserRepo) Insert(ctx context.Context, user *models.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	return count > 0, err
}

func (r *UserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddToWishlist appends the movie unless an entry with the same id is already
// present. The `$ne` guard on the wishlist ids keeps the add-and-dedup a single
// atomic update; a zero match is then disambiguated against a missing user.
func (r *UserRepo) AddToWishlist(ctx context.Context, email string, movie models.MovieRef) (WishlistResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email, "wishlist._id": bson.M{"$ne": movie.MovieID}},
		bson.M{"$push": bson.M{"wishlist": movie}},
	)
	if err != nil {
		return 0, err
	}
	if res.ModifiedCount == 1 {
		return WishlistAdded, nil
	}

	exists, err := r.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if !exists {
		return WishlistUserMissing, nil
	}
	return WishlistAlreadyPresent, nil
}

// RemoveFromWishlist pulls the entry with the given movie id. Returns ErrNotFound
// when the user is absent or the movie was not in the wishlist.
func (r *UserRepo) RemoveFromWishlist(ctx context.Context, email, movieID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"wishlist": bson.M{"_id": movieID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GrantAdmin sets the role of the user with the given hex id to admin.
func (r *UserRepo) GrantAdmin(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) DeleteByID(ctx context.Context, id string) error {
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
