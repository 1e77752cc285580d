package boardq

// MappingRow is one backend record linking a single question to a single
// board/year. Question content is denormalized onto the row for display.
type MappingRow struct {
	ID           int64  `json:"id"`
	BoardID      int64  `json:"board_id"`
	BoardName    string `json:"board_name,omitempty"`
	QuestionID   int64  `json:"question_id"`
	Year         string `json:"year"`
	QuestionText string `json:"question_text,omitempty"`
	Answer       string `json:"answer,omitempty"`
	Option1      string `json:"option1,omitempty"`
	Option2      string `json:"option2,omitempty"`
	Option3      string `json:"option3,omitempty"`
	Option4      string `json:"option4,omitempty"`
	Option5      string `json:"option5,omitempty"`
	SubjectID    *int64 `json:"subject_id,omitempty"`
	SubjectName  string `json:"subject_name,omitempty"`
	ChapterID    *int64 `json:"chapter_id,omitempty"`
	ChapterName  string `json:"chapter_name,omitempty"`
	IsDraft      *bool  `json:"is_draft,omitempty"`
	IsPublished  *bool  `json:"is_published,omitempty"`
}

// Question is a catalog entity owned by the upstream API. The gateway only
// reads and references questions by ID; it never authors content.
type Question struct {
	ID          int64  `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer,omitempty"`
	Option1     string `json:"option1,omitempty"`
	Option2     string `json:"option2,omitempty"`
	Option3     string `json:"option3,omitempty"`
	Option4     string `json:"option4,omitempty"`
	Option5     string `json:"option5,omitempty"`
	SubjectID   *int64 `json:"subject_id,omitempty"`
	ChapterID   *int64 `json:"chapter_id,omitempty"`
	IsDraft     *bool  `json:"is_draft,omitempty"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

type Board struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Chapter struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SubjectID int64  `json:"subject_id"`
}

type Topic struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ChapterID int64  `json:"chapter_id"`
}

type Pagination struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type QuestionPage struct {
	Questions  []Question `json:"questions"`
	Pagination Pagination `json:"pagination"`
}

// MappingFilter narrows a board-question listing. Zero values mean "all".
type MappingFilter struct {
	BoardID   *int64
	Year      string
	SubjectID *int64
}

// QuestionFilter drives the paginated catalog search. ExcludeIDs is applied
// by the gateway after the fetch; the upstream API has no such parameter.
type QuestionFilter struct {
	Search      string
	SubjectID   *int64
	ChapterID   *int64
	TopicID     *int64
	IsPublished *bool
	IsDraft     *bool
	Page        int
	Limit       int
	ExcludeIDs  []int64
}

// MappingUpdate is a partial update of a single mapping row.
type MappingUpdate struct {
	BoardID   *int64  `json:"board_id,omitempty"`
	Year      *string `json:"year,omitempty"`
	SubjectID *int64  `json:"subject_id,omitempty"`
	ChapterID *int64  `json:"chapter_id,omitempty"`
}
