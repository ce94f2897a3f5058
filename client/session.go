package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/diamondburned/qaportal/qa"
	"github.com/pkg/errors"
)

// Session bundles the question API and the identity endpoint.
type Session struct {
	API      *Client
	Identity *Client
	ClientID string
}

// NewSession creates a new session from a validated config.
func NewSession(cfg ClientConfig) (*Session, error) {
	api, err := NewClient(cfg.APIBaseURL, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create API client")
	}

	id, err := NewClient(cfg.IdentityBaseURL, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create identity client")
	}

	return &Session{
		API:      api,
		Identity: id,
		ClientID: cfg.ClientID,
	}, nil
}

// WithContext returns a copy of the session whose requests are all bound to
// the given context.
func (s *Session) WithContext(ctx context.Context) *Session {
	return &Session{
		API:      s.API.WithContext(ctx),
		Identity: s.Identity.WithContext(ctx),
		ClientID: s.ClientID,
	}
}

// ListQuestions returns the first page of questions. The page is always
// qa.ListLimit long at offset qa.ListOffset.
func (s *Session) ListQuestions() (q []qa.Question, err error) {
	return q, s.API.Get("/question", &q, url.Values{
		"limit":  {strconv.Itoa(qa.ListLimit)},
		"offset": {strconv.Itoa(qa.ListOffset)},
	})
}

func (s *Session) Question(id int64) (q qa.Question, err error) {
	return q, s.API.Get(fmt.Sprintf("/question/%d", id), &q, nil)
}

func (s *Session) Answers(questionID int64) (a []qa.Answer, err error) {
	return a, s.API.Get("/answer", &a, url.Values{
		"questionID": {strconv.FormatInt(questionID, 10)},
		"limit":      {strconv.Itoa(qa.MaxListLimit)},
		"offset":     {"0"},
	})
}

func (s *Session) QuestionComments(questionID int64) (c []qa.Comment, err error) {
	return c, s.API.Get("/comment", &c, url.Values{
		"questionID": {strconv.FormatInt(questionID, 10)},
		"limit":      {strconv.Itoa(qa.MaxListLimit)},
		"offset":     {"0"},
	})
}

func (s *Session) AnswerComments(answerID int64) (c []qa.Comment, err error) {
	return c, s.API.Get("/comment", &c, url.Values{
		"answerID": {strconv.FormatInt(answerID, 10)},
		"limit":    {strconv.Itoa(qa.MaxListLimit)},
		"offset":   {"0"},
	})
}

// Token exchanges the credentials for a token using the password grant.
func (s *Session) Token(username, password string) (t qa.Token, err error) {
	return t, s.Identity.Post("", &t, url.Values{
		"grant_type": {"password"},
		"client_id":  {s.ClientID},
		"username":   {username},
		"password":   {password},
	})
}
