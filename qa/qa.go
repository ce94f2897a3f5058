// Package qa contains the display records served by the question API and the
// identity endpoint.
package qa

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/diamondburned/qaportal/httperr"
	"github.com/pkg/errors"
)

const (
	// ListLimit is the fixed page size of the question list.
	ListLimit = 5
	// ListOffset is the fixed offset of the question list.
	ListOffset = 0
	// MaxListLimit is the largest limit the backend accepts for answers and
	// comments.
	MaxListLimit = 50
)

var ErrInvalidID = httperr.New(400, "invalid ID")

type Question struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"userID"`
	Rating          int64     `json:"rating"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	NumberOfAnswers int64     `json:"numberOfAnswers"`
	CorrectAnswer   *int64    `json:"correctAnswer"`
	Views           int64     `json:"views"`
	CreatedAt       Timestamp `json:"createdAt"`
	ModifiedAt      Timestamp `json:"modifiedAt"`
}

// Solved returns true if the question has an accepted answer.
func (q Question) Solved() bool {
	return q.CorrectAnswer != nil
}

// Edited returns true if the question was modified after creation.
func (q Question) Edited() bool {
	return q.ModifiedAt.After(q.CreatedAt.Time)
}

type Answer struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"userID"`
	QuestionID    int64     `json:"questionID"`
	Description   string    `json:"description"`
	Rating        int64     `json:"rating"`
	CorrectAnswer bool      `json:"correctAnswer"`
	CreatedAt     Timestamp `json:"createdAt"`
	ModifiedAt    Timestamp `json:"modifiedAt"`
}

type Comment struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userID"`
	Description string    `json:"description"`
	Rating      int64     `json:"rating"`
	CreatedAt   Timestamp `json:"createdAt"`
	ModifiedAt  Timestamp `json:"modifiedAt"`
}

// Token is the result of a password grant. Only the commonly known fields are
// decoded; Raw holds the whole object untouched.
type Token struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	Scope            string `json:"scope"`

	Raw json.RawMessage `json:"-"`
}

func (t *Token) UnmarshalJSON(b []byte) error {
	type raw Token

	if err := json.Unmarshal(b, (*raw)(t)); err != nil {
		return err
	}

	t.Raw = append(t.Raw[:0], b...)
	return nil
}

// ExpiresAt returns the absolute expiry relative to the given issue time, or a
// zero time if the token does not say.
func (t Token) ExpiresAt(issued time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issued.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// ErrResponse is the error body of either upstream. The question API sends
// message, the identity endpoint sends error and error_description.
type ErrResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"message"`
}

// String returns the most descriptive message in the response, or an empty
// string.
func (e ErrResponse) String() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// Timestamp decodes both RFC 3339 times and the zone-less ISO local date-times
// that the backend emits. Zone-less times are taken as UTC.
type Timestamp struct {
	time.Time
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "timestamp is not a string")
	}

	if tm, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = tm
		return nil
	}

	for _, layout := range localLayouts {
		if tm, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = tm
			return nil
		}
	}

	return errors.Errorf("unknown timestamp format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
