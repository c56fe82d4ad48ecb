package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the account document. Wishlist is a set: a movie id appears at most
// once, enforced by the repository's guarded update.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
	PhotoURL string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Wishlist []MovieRef         `bson:"wishlist" json:"wishlist"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MovieRef is the wishlist entry: a reference to a catalog movie, keyed by its id.
type MovieRef struct {
	MovieID string `bson:"_id" json:"_id"`
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Poster  string `bson:"poster,omitempty" json:"poster,omitempty"`
}

// ForumQuery is a discussion topic. Upvotes and downvotes hold voter ids and are
// mutually exclusive for any given voter.
type ForumQuery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Author      string             `bson:"author" json:"author"`
	Views       int64              `bson:"views" json:"views"`
	Upvotes     []string           `bson:"upvotes" json:"upvotes"`
	Downvotes   []string           `bson:"downvotes" json:"downvotes"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	User      string    `bson:"user" json:"user"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// QueryReport flags a forum topic. One report per (query, reporter) pair.
type QueryReport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	QueryID    primitive.ObjectID `bson:"queryId" json:"queryId"`
	Reporter   string             `bson:"reporter" json:"reporter"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ReportedAt time.Time          `bson:"reportedAt" json:"reportedAt"`
}

// Payment is an append-only record of a completed transaction. Date is optional;
// records without one are skipped by the revenue aggregation.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency,omitempty" json:"currency,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Date          time.Time          `bson:"date,omitempty" json:"date,omitempty"`
}

// MonthlyRevenue is one group of the revenue aggregation.
type MonthlyRevenue struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalRevenue float64 `json:"totalRevenue"`
}
