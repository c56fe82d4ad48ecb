package controllers

import "cyco-backend/internal/models"

type MessageResponse struct {
	Message string `json:"message"`
}

type InsertedResponse struct {
	InsertedID string `json:"insertedId"`
	Message    string `json:"message,omitempty"`
}

type FileResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	PhotoURL string `json:"photoUrl"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type WishlistAddRequest struct {
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	Movie models.MovieRef `json:"movie"`
}

type CreateQueryRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Author      string `json:"author" validate:"required"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=upvote downvote"`
	Voter    string `json:"voter" validate:"required"`
}

type CommentRequest struct {
	User string `json:"user" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type ReportRequest struct {
	QueryID  string `json:"queryId" validate:"required"`
	Reporter string `json:"reporter" validate:"required,email"`
	Reason   string `json:"reason"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
