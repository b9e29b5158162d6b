// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Request bodies validated with go-playground/validator before dispatch.
// Invalid input is rejected locally as a client error; the backend never
// sees it.

// LoginRequest is the POST /token/ body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the POST /register/ body.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// RatingRequest is the POST /ratings/ body.
type RatingRequest struct {
	MovieID int     `json:"movie_id" validate:"required,min=1"`
	Rating  float64 `json:"rating" validate:"required,min=0.5,max=10"`
}

// ReviewRequest is the POST /reviews/ body.
type ReviewRequest struct {
	MovieID    int    `json:"movie_id" validate:"required,min=1"`
	ReviewText string `json:"review_text" validate:"required,min=1,max=10000"`
	IsSpoiler  bool   `json:"is_spoiler"`
}

// validate is the shared validator instance. Struct validation is stateless
// and safe for concurrent use.
var validate = validator.New()

// validateRequest checks a request struct against its validation tags and
// converts the first violation into a normalized client error.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return clientError(fmt.Errorf("invalid %s: failed %s constraint", fe.Field(), fe.Tag()))
	}
	return clientError(err)
}
