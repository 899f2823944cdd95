package domain

// Comment is a user comment attached to a movie.
type Comment struct {
	ID      string `json:"_id" yaml:"id"`
	UserID  string `json:"userId" yaml:"user_id"`
	Comment string `json:"comment" yaml:"comment"`
}
