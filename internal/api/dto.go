package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/samber/lo"
	"github.com/tejashwikalptaru/playring/internal/domain"
)

// SongResponse is the wire form of a song. audio_url is null when unknown.
type SongResponse struct {
	ID          domain.SongID `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	DurationSec int           `json:"duration_sec"`
	AudioURL    *string       `json:"audio_url"`
}

func newSongResponse(song domain.Song) SongResponse {
	return SongResponse{
		ID:          song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		DurationSec: song.DurationSec,
		AudioURL:    lo.EmptyableToPtr(song.AudioURL),
	}
}

func newSongList(songs []domain.Song) []SongResponse {
	return lo.Map(songs, func(song domain.Song, _ int) SongResponse {
		return newSongResponse(song)
	})
}

// CurrentResponse wraps the result of a navigation call.
type CurrentResponse struct {
	Song *SongResponse `json:"song"`
}

func newCurrentResponse(song *domain.Song) CurrentResponse {
	if song == nil {
		return CurrentResponse{}
	}
	resp := newSongResponse(*song)
	return CurrentResponse{Song: &resp}
}

// SeedResponse lists the songs added by a seed call.
type SeedResponse struct {
	Seeded int            `json:"seeded"`
	Songs  []SongResponse `json:"songs"`
}

// SongRequest is the body of POST /songs.
type SongRequest struct {
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	DurationSec *int    `json:"duration_sec"`
	AudioURL    *string `json:"audio_url"`
}

// Bind requires title and artist; duration and audio URL are optional.
func (req *SongRequest) Bind(*http.Request) error {
	if req.Title == nil {
		return domain.NewValidationError("title", nil, "field required")
	}
	if req.Artist == nil {
		return domain.NewValidationError("artist", nil, "field required")
	}
	return req.Input().Validate()
}

// Input converts the request into a song input.
func (req *SongRequest) Input() domain.SongInput {
	return domain.SongInput{
		Title:       lo.FromPtr(req.Title),
		Artist:      lo.FromPtr(req.Artist),
		DurationSec: lo.FromPtr(req.DurationSec),
		AudioURL:    lo.FromPtr(req.AudioURL),
	}
}

// SongIDRequest is the body of POST /enqueue and POST /favorites.
type SongIDRequest struct {
	SongID *domain.SongID `json:"song_id"`
}

// Bind requires song_id.
func (req *SongIDRequest) Bind(*http.Request) error {
	if req.SongID == nil {
		return domain.NewValidationError("song_id", nil, "field required")
	}
	return nil
}

// ImplRequest is the body of POST /impl.
type ImplRequest struct {
	Impl string `json:"impl"`
}

// Bind accepts "circular" or "list".
func (req *ImplRequest) Bind(*http.Request) error {
	_, err := domain.ParseImplementation(req.Impl)
	return err
}

// ImplResponse reports the active implementation.
type ImplResponse struct {
	Impl domain.Implementation `json:"impl"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username *string `json:"username"`
}

// Bind requires username; a blank one logs out.
func (req *LoginRequest) Bind(*http.Request) error {
	if req.Username == nil {
		return domain.NewValidationError("username", nil, "field required")
	}
	return nil
}

// UserResponse reports the logged-in user; user is null when nobody is.
type UserResponse struct {
	User  *string `json:"user"`
	Token string  `json:"token,omitempty"`
}

// ScanRequest is the body of POST /library/scan.
type ScanRequest struct {
	Path string `json:"path"`
}

// Bind requires path.
func (req *ScanRequest) Bind(*http.Request) error {
	if req.Path == "" {
		return domain.NewValidationError("path", "", "field required")
	}
	return nil
}

// ScanResponse lists the songs imported by a library scan.
type ScanResponse struct {
	Imported int            `json:"imported"`
	Songs    []SongResponse `json:"songs"`
}

// ErrResponse is the error body {"detail": "..."}.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Detail         string `json:"detail"`
}

// Render sets the response status.
func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errNotFound(detail string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Detail: detail}
}

func errBadRequest(err error) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Detail: err.Error()}
}

// errFor maps a service error to a response.
func errFor(err error) render.Renderer {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrSongNotFound):
		return errNotFound("Song not found")
	case errors.Is(err, domain.ErrFileNotFound):
		return errNotFound(err.Error())
	case errors.As(err, &verr),
		errors.Is(err, domain.ErrInvalidSongID),
		errors.Is(err, domain.ErrUnknownImplementation):
		return errBadRequest(err)
	case errors.Is(err, domain.ErrScanInProgress):
		return &ErrResponse{HTTPStatusCode: http.StatusConflict, Detail: err.Error()}
	default:
		return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Detail: err.Error()}
	}
}
