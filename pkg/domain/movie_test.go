package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMovieInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      MovieInput
		wantErr bool
	}{
		{"valid", MovieInput{Title: "Dune", Director: "Villeneuve", Year: 2021}, false},
		{"year unset", MovieInput{Title: "Dune"}, false},
		{"blank title", MovieInput{Title: "   ", Year: 2021}, true},
		{"year too early", MovieInput{Title: "Old", Year: 1200}, true},
		{"year too late", MovieInput{Title: "Future", Year: 3000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMovieInputValidateTitleSentinel(t *testing.T) {
	err := MovieInput{}.Validate()
	if !errors.Is(err, ErrTitleRequired) {
		t.Errorf("Validate() = %v, want ErrTitleRequired", err)
	}
}

func TestMovieDecodesAPIShape(t *testing.T) {
	raw := `{"_id":"m1","title":"Dune","director":"Villeneuve","year":2021,
		"comments":[{"_id":"c1","userId":"u1","comment":"great"}]}`
	var m Movie
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.ID != "m1" || m.Year != 2021 {
		t.Errorf("got %+v", m)
	}
	if len(m.Comments) != 1 || m.Comments[0].UserID != "u1" {
		t.Errorf("comments = %+v", m.Comments)
	}
	if in := m.Input(); in.Title != "Dune" || in.Director != "Villeneuve" {
		t.Errorf("Input() = %+v", in)
	}
}
