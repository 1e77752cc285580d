package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boardprep/boardprep-admin/internal/boardq"
)

// Client is a typed client for the content API. Every request carries a
// bearer token from the injected TokenProvider; a missing token aborts the
// request before it reaches the network. Responses are decoded strictly:
// an unexpected body shape is a DecodeError, never an empty result.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenProvider
}

type Config struct {
	BaseURL string
	Tokens  TokenProvider
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:   strings.TrimSuffix(cfg.BaseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: cfg.Tokens,
	}
}

var _ boardq.ContentAPI = (*Client)(nil)

func (c *Client) ListBoardQuestions(ctx context.Context, f boardq.MappingFilter) ([]boardq.MappingRow, error) {
	q := url.Values{}
	if f.BoardID != nil {
		q.Set("board_id", strconv.FormatInt(*f.BoardID, 10))
	}
	if f.Year != "" {
		q.Set("year", f.Year)
	}
	if f.SubjectID != nil {
		q.Set("subject_id", strconv.FormatInt(*f.SubjectID, 10))
	}
	var env struct {
		BoardQuestions *[]boardq.MappingRow `json:"board_questions"`
	}
	if err := c.do(ctx, http.MethodGet, "/board-questions", q, nil, &env); err != nil {
		return nil, err
	}
	if env.BoardQuestions == nil {
		return nil, &DecodeError{Endpoint: "/board-questions", Reason: "missing board_questions"}
	}
	return *env.BoardQuestions, nil
}

func (c *Client) UpdateGroup(ctx context.Context, u boardq.GroupUpdate) error {
	return c.do(ctx, http.MethodPut, "/board-questions/group/update", nil, u, nil)
}

func (c *Client) BulkCreateMappings(ctx context.Context, req boardq.BulkCreateRequest) error {
	return c.do(ctx, http.MethodPost, "/board-questions/bulk", nil, req, nil)
}

func (c *Client) UpdateMapping(ctx context.Context, id int64, u boardq.MappingUpdate) error {
	return c.do(ctx, http.MethodPut, "/board-questions/"+strconv.FormatInt(id, 10), nil, u, nil)
}

func (c *Client) DeleteMapping(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/board-questions/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *Client) ListQuestions(ctx context.Context, f boardq.QuestionFilter) (boardq.QuestionPage, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SubjectID != nil {
		q.Set("subject_id", strconv.FormatInt(*f.SubjectID, 10))
	}
	if f.ChapterID != nil {
		q.Set("chapter_id", strconv.FormatInt(*f.ChapterID, 10))
	}
	if f.TopicID != nil {
		q.Set("topic_id", strconv.FormatInt(*f.TopicID, 10))
	}
	if f.IsPublished != nil {
		q.Set("is_published", strconv.FormatBool(*f.IsPublished))
	}
	if f.IsDraft != nil {
		q.Set("is_draft", strconv.FormatBool(*f.IsDraft))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	var env struct {
		Questions  *[]boardq.Question `json:"questions"`
		Pagination *boardq.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/questions", q, nil, &env); err != nil {
		return boardq.QuestionPage{}, err
	}
	if env.Questions == nil || env.Pagination == nil {
		return boardq.QuestionPage{}, &DecodeError{Endpoint: "/questions", Reason: "missing questions or pagination"}
	}
	return boardq.QuestionPage{Questions: *env.Questions, Pagination: *env.Pagination}, nil
}

func (c *Client) ListBoards(ctx context.Context) ([]boardq.Board, error) {
	var env struct {
		Boards *[]boardq.Board `json:"boards"`
	}
	if err := c.do(ctx, http.MethodGet, "/boards", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Boards == nil {
		return nil, &DecodeError{Endpoint: "/boards", Reason: "missing boards"}
	}
	return *env.Boards, nil
}

func (c *Client) ListSubjects(ctx context.Context) ([]boardq.Subject, error) {
	var env struct {
		Subjects *[]boardq.Subject `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Subjects == nil {
		return nil, &DecodeError{Endpoint: "/subjects", Reason: "missing subjects"}
	}
	return *env.Subjects, nil
}

func (c *Client) ListChaptersBySubject(ctx context.Context, subjectID int64) ([]boardq.Chapter, error) {
	q := url.Values{}
	q.Set("subject_id", strconv.FormatInt(subjectID, 10))
	var env struct {
		Chapters *[]boardq.Chapter `json:"chapters"`
	}
	if err := c.do(ctx, http.MethodGet, "/chapters", q, nil, &env); err != nil {
		return nil, err
	}
	if env.Chapters == nil {
		return nil, &DecodeError{Endpoint: "/chapters", Reason: "missing chapters"}
	}
	return *env.Chapters, nil
}

func (c *Client) ListTopicsByChapter(ctx context.Context, chapterID int64) ([]boardq.Topic, error) {
	q := url.Values{}
	q.Set("chapter_id", strconv.FormatInt(chapterID, 10))
	var env struct {
		Topics *[]boardq.Topic `json:"topics"`
	}
	if err := c.do(ctx, http.MethodGet, "/topics", q, nil, &env); err != nil {
		return nil, err
	}
	if env.Topics == nil {
		return nil, &DecodeError{Endpoint: "/topics", Reason: "missing topics"}
	}
	return *env.Topics, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: marshal %s: %w", path, err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return &APIError{Status: res.StatusCode, Message: errorMessage(res.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}

// errorMessage extracts the server's own message from an error body,
// falling back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
