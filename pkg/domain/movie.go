package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Year bounds accepted by MovieInput.Validate.
const (
	MinYear = 1870
	MaxYear = 2100
)

// Movie is a catalog entry as returned by the movies API.
type Movie struct {
	ID          string    `json:"_id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Director    string    `json:"director" yaml:"director"`
	Year        int       `json:"year" yaml:"year"`
	Description string    `json:"description" yaml:"description"`
	Genre       string    `json:"genre" yaml:"genre"`
	Comments    []Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// MovieInput is the payload for creating or updating a movie.
type MovieInput struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

// ErrTitleRequired is returned by Validate when the title is blank.
var ErrTitleRequired = errors.New("title is required")

// Validate checks the fields the API cannot sensibly accept.
// A zero Year means unset.
func (in MovieInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if in.Year != 0 && (in.Year < MinYear || in.Year > MaxYear) {
		return fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return nil
}

// Input returns the editable fields of m.
func (m Movie) Input() MovieInput {
	return MovieInput{
		Title:       m.Title,
		Director:    m.Director,
		Year:        m.Year,
		Description: m.Description,
		Genre:       m.Genre,
	}
}
