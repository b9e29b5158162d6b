// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import "github.com/cinelog/cinelog/internal/config"

// PosterSize is a CDN size token for poster artwork.
type PosterSize string

// Poster size tokens.
const (
	PosterW92      PosterSize = "w92"
	PosterW154     PosterSize = "w154"
	PosterW185     PosterSize = "w185"
	PosterW342     PosterSize = "w342"
	PosterW500     PosterSize = "w500"
	PosterW780     PosterSize = "w780"
	PosterOriginal PosterSize = "original"
)

// BackdropSize is a CDN size token for backdrop artwork.
type BackdropSize string

// Backdrop size tokens.
const (
	BackdropW300     BackdropSize = "w300"
	BackdropW780     BackdropSize = "w780"
	BackdropW1280    BackdropSize = "w1280"
	BackdropOriginal BackdropSize = "original"
)

// ProfileSize is a CDN size token for person portraits.
type ProfileSize string

// Profile size tokens.
const (
	ProfileW45      ProfileSize = "w45"
	ProfileW185     ProfileSize = "w185"
	ProfileH632     ProfileSize = "h632"
	ProfileOriginal ProfileSize = "original"
)

// Images derives fully-qualified artwork URLs from CDN-relative paths.
// All methods are pure: no network access, absent paths map to the
// configured placeholder.
type Images struct {
	baseURL     string
	placeholder string
}

// NewImages builds an image URL deriver from configuration.
func NewImages(cfg config.ImagesConfig) Images {
	return Images{baseURL: cfg.BaseURL, placeholder: cfg.Placeholder}
}

// PosterURL maps a poster path and size token to a full URL.
func (i Images) PosterURL(path string, size PosterSize) string {
	return i.build(path, string(size))
}

// BackdropURL maps a backdrop path and size token to a full URL.
func (i Images) BackdropURL(path string, size BackdropSize) string {
	return i.build(path, string(size))
}

// ProfileURL maps a person portrait path and size token to a full URL.
func (i Images) ProfileURL(path string, size ProfileSize) string {
	return i.build(path, string(size))
}

func (i Images) build(path, size string) string {
	if path == "" {
		return i.placeholder
	}
	return i.baseURL + "/" + size + path
}
