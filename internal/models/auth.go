// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package models

// User represents an account on the backend.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthTokens is an opaque access/refresh bearer credential pair with
// server-defined expiry. The access token is attached to every authenticated
// request; the refresh token is exchanged for a new pair when the access
// token is rejected.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Profile represents the editable user profile returned by /profile/.
type Profile struct {
	User           User     `json:"user"`
	Bio            string   `json:"bio,omitempty"`
	AvatarPath     string   `json:"avatar_path,omitempty"`
	FavoriteGenres []string `json:"favorite_genres,omitempty"`
}

// ProfileUpdate carries the PATCH body for /profile/. Nil fields are omitted
// so the backend only touches what the caller changed.
type ProfileUpdate struct {
	Bio            *string  `json:"bio,omitempty"`
	Email          *string  `json:"email,omitempty"`
	FirstName      *string  `json:"first_name,omitempty"`
	LastName       *string  `json:"last_name,omitempty"`
	FavoriteGenres []string `json:"favorite_genres,omitempty"`
}
