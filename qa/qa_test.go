package qa

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func TestTimestamp(t *testing.T) {
	var tests = []struct {
		in  string
		out time.Time
	}{
		{`"2020-06-01T12:30:00"`, time.Date(2020, 6, 1, 12, 30, 0, 0, time.UTC)},
		{`"2020-06-01T12:30:00.123"`, time.Date(2020, 6, 1, 12, 30, 0, 123e6, time.UTC)},
		{`"2020-06-01T12:30"`, time.Date(2020, 6, 1, 12, 30, 0, 0, time.UTC)},
		{`"2020-06-01T12:30:00Z"`, time.Date(2020, 6, 1, 12, 30, 0, 0, time.UTC)},
		{`null`, time.Time{}},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(test.in), &ts); err != nil {
				t.Fatal("Failed to unmarshal:", err)
			}

			if !ts.Equal(test.out) {
				t.Fatalf("Unexpected time %v, expected %v", ts.Time, test.out)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		var ts Timestamp
		if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
			t.Fatal("Unexpected nil error for invalid timestamp")
		}
	})
}

func TestQuestionDecode(t *testing.T) {
	const body = `{
		"id": 42,
		"userID": "a1",
		"rating": 3,
		"title": "How?",
		"description": "Like *this*.",
		"numberOfAnswers": 1,
		"correctAnswer": 7,
		"views": 10,
		"createdAt": "2020-06-01T12:00:00",
		"modifiedAt": "2020-06-02T12:00:00"
	}`

	var q Question
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		t.Fatal("Failed to unmarshal:", err)
	}

	var correct int64 = 7
	var expect = Question{
		ID:              42,
		UserID:          "a1",
		Rating:          3,
		Title:           "How?",
		Description:     "Like *this*.",
		NumberOfAnswers: 1,
		CorrectAnswer:   &correct,
		Views:           10,
	}

	if !q.CreatedAt.Equal(time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("Unexpected createdAt:", q.CreatedAt)
	}
	if !q.ModifiedAt.Equal(time.Date(2020, 6, 2, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("Unexpected modifiedAt:", q.ModifiedAt)
	}

	// Times are checked above.
	expect.CreatedAt = q.CreatedAt
	expect.ModifiedAt = q.ModifiedAt

	if eq := deep.Equal(q, expect); eq != nil {
		t.Fatal("Unexpected question:", eq)
	}

	if !q.Solved() {
		t.Fatal("Question with a correct answer is not solved")
	}
	if !q.Edited() {
		t.Fatal("Question modified a day later is not edited")
	}
}

func TestTokenKeepsRaw(t *testing.T) {
	const body = `{"access_token":"abc","token_type":"bearer","expires_in":300,"session_state":"x"}`

	var tk Token
	if err := json.Unmarshal([]byte(body), &tk); err != nil {
		t.Fatal("Failed to unmarshal:", err)
	}

	if tk.AccessToken != "abc" || tk.TokenType != "bearer" || tk.ExpiresIn != 300 {
		t.Fatalf("Unexpected token: %#v", tk)
	}

	if string(tk.Raw) != body {
		t.Fatalf("Raw token changed: %s", tk.Raw)
	}

	issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if exp := tk.ExpiresAt(issued); !exp.Equal(issued.Add(5 * time.Minute)) {
		t.Fatal("Unexpected expiry:", exp)
	}
}

func TestErrResponseString(t *testing.T) {
	var tests = []struct {
		resp ErrResponse
		str  string
	}{
		{ErrResponse{Error: "invalid_grant", Description: "Invalid user credentials"}, "Invalid user credentials"},
		{ErrResponse{Message: "Question not found"}, "Question not found"},
		{ErrResponse{Error: "unauthorized_client"}, "unauthorized_client"},
		{ErrResponse{}, ""},
	}

	for _, test := range tests {
		if str := test.resp.String(); str != test.str {
			t.Errorf("Unexpected string %q, expected %q", str, test.str)
		}
	}
}
