package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/boardprep/boardprep-admin/internal/boardq"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Tokens: StaticToken("test-token")})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"boards": []boardq.Board{}})
	})

	if _, err := c.ListBoards(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_MissingTokenShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL, Tokens: StaticToken("")})

	_, err := c.ListBoards(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if called {
		t.Fatalf("request must not reach the network without a token")
	}
}

func TestClient_ListBoardQuestionsFilters(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"board_questions": []boardq.MappingRow{
				{ID: 1, BoardID: 1, QuestionID: 100, Year: "2022"},
			},
		})
	})

	boardID, subjectID := int64(1), int64(5)
	rows, err := c.ListBoardQuestions(context.Background(), boardq.MappingFilter{
		BoardID: &boardID, Year: "2022", SubjectID: &subjectID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].QuestionID != 100 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	want := map[string][]string{"board_id": {"1"}, "year": {"2022"}, "subject_id": {"5"}}
	if !reflect.DeepEqual(gotQuery, want) {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
}

func TestClient_MalformedEnvelopeIsDecodeError(t *testing.T) {
	// A silent `data.boards || []` fallback is exactly what this client
	// refuses to do: the wrong key is an explicit decode failure.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []boardq.Board{{ID: 1}}})
	})

	_, err := c.ListBoards(context.Background())
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestClient_NonOKCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "mapping already exists"})
	})

	err := c.BulkCreateMappings(context.Background(), boardq.BulkCreateRequest{
		BoardID: 1, QuestionIDs: []int64{1}, Years: "2023",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "mapping already exists" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_UpdateGroupBody(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/board-questions/group/update" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	subjectID := int64(5)
	newBoard := int64(2)
	err := c.UpdateGroup(context.Background(), boardq.GroupUpdate{
		BoardID:   1,
		Year:      "2022",
		SubjectID: &subjectID,
		Updates: boardq.GroupChanges{
			BoardID:         &newBoard,
			NewQuestions:    []int64{4},
			RemoveQuestions: []int64{3},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["boardId"] != float64(1) || got["year"] != "2022" || got["subjectId"] != float64(5) {
		t.Fatalf("group address mismatch: %v", got)
	}
	updates, _ := got["updates"].(map[string]any)
	if updates == nil {
		t.Fatalf("missing updates object: %v", got)
	}
	if updates["board_id"] != float64(2) {
		t.Fatalf("unexpected updates: %v", updates)
	}
	if _, ok := updates["year"]; ok {
		t.Fatalf("unchanged fields must be omitted: %v", updates)
	}
	if !reflect.DeepEqual(updates["new_questions"], []any{float64(4)}) {
		t.Fatalf("unexpected new_questions: %v", updates["new_questions"])
	}
	if !reflect.DeepEqual(updates["remove_questions"], []any{float64(3)}) {
		t.Fatalf("unexpected remove_questions: %v", updates["remove_questions"])
	}
}

func TestClient_ListQuestionsPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "vector" || q.Get("is_published") != "true" || q.Get("page") != "2" {
			t.Errorf("unexpected query: %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions": []boardq.Question{{ID: 7, Question: "..."}},
			"pagination": boardq.Pagination{
				TotalItems: 41, TotalPages: 3, CurrentPage: 2, HasNext: true, HasPrev: true,
			},
		})
	})

	published := true
	page, err := c.ListQuestions(context.Background(), boardq.QuestionFilter{
		Search: "vector", IsPublished: &published, Page: 2, Limit: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Pagination.TotalItems != 41 || !page.Pagination.HasNext {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if len(page.Questions) != 1 || page.Questions[0].ID != 7 {
		t.Fatalf("unexpected questions: %+v", page.Questions)
	}
}
