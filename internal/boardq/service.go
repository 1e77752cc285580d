package boardq

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/boardprep/boardprep-admin/internal/audit"
)

// ContentAPI is the slice of the upstream content API this service needs.
type ContentAPI interface {
	ListBoardQuestions(ctx context.Context, f MappingFilter) ([]MappingRow, error)
	UpdateGroup(ctx context.Context, u GroupUpdate) error
	BulkCreateMappings(ctx context.Context, req BulkCreateRequest) error
	UpdateMapping(ctx context.Context, id int64, u MappingUpdate) error
	DeleteMapping(ctx context.Context, id int64) error
	ListQuestions(ctx context.Context, f QuestionFilter) (QuestionPage, error)
	ListBoards(ctx context.Context) ([]Board, error)
	ListSubjects(ctx context.Context) ([]Subject, error)
	ListChaptersBySubject(ctx context.Context, subjectID int64) ([]Chapter, error)
	ListTopicsByChapter(ctx context.Context, chapterID int64) ([]Topic, error)
}

// AuditSink records admin mutations. *audit.EventRepo satisfies it.
type AuditSink interface {
	Record(ctx context.Context, actor, typ, key string, payload any) error
}

type Service struct {
	api   ContentAPI
	audit AuditSink // optional
}

func NewService(api ContentAPI, sink AuditSink) *Service {
	return &Service{api: api, audit: sink}
}

// ListGroups fetches every mapping row and regroups. The grouped view is
// always derived fresh from the latest upstream response.
func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.api.ListBoardQuestions(ctx, MappingFilter{})
	if err != nil {
		return nil, fmt.Errorf("list board questions: %w", err)
	}
	return GroupRows(rows), nil
}

// ViewGroup refetches the authoritative row set for a group. Chapter names
// missing from the rows are resolved via a chapters-by-subject lookup; a
// failed lookup leaves the names blank rather than failing the view.
func (s *Service) ViewGroup(ctx context.Context, g Group) (GroupView, error) {
	boardID := g.BoardID
	f := MappingFilter{BoardID: &boardID, Year: g.Year, SubjectID: g.SubjectID}
	rows, err := s.api.ListBoardQuestions(ctx, f)
	if err != nil {
		return GroupView{}, fmt.Errorf("view group %s: %w", g.Key, err)
	}

	if g.SubjectID != nil && anyMissingChapterName(rows) {
		chapters, err := s.api.ListChaptersBySubject(ctx, *g.SubjectID)
		if err != nil {
			log.Printf("boardq: chapter lookup for subject %d failed: %v", *g.SubjectID, err)
		} else {
			names := make(map[int64]string, len(chapters))
			for _, c := range chapters {
				names[c.ID] = c.Name
			}
			ResolveChapterNames(rows, names)
		}
	}

	return GroupView{
		Group:         g,
		Rows:          rows,
		ChapterCounts: ChapterSummary(rows),
	}, nil
}

// UpdateGroup reconciles one edit session against upstream. An empty diff
// skips the network call and reports a no-op success.
func (s *Service) UpdateGroup(ctx context.Context, actor string, sess EditSession) (string, error) {
	upd, err := sess.BuildUpdate()
	if errors.Is(err, ErrNoChanges) {
		return "No changes to save", nil
	}
	if err != nil {
		return "", err
	}
	if err := s.api.UpdateGroup(ctx, upd); err != nil {
		return "", err
	}
	s.record(ctx, actor, audit.TypeGroupUpdated, sess.Original.Key, upd)
	return "Group updated", nil
}

// BulkAdd maps the selected questions to one board/year.
func (s *Service) BulkAdd(ctx context.Context, actor string, boardID int64, year string, sel *Selection) (BulkCreateRequest, error) {
	req, err := BuildBulkCreate(boardID, year, sel)
	if err != nil {
		return BulkCreateRequest{}, err
	}
	if err := s.api.BulkCreateMappings(ctx, req); err != nil {
		return BulkCreateRequest{}, err
	}
	s.record(ctx, actor, audit.TypeBulkMappingsCreated, GroupKey(boardID, year, nil), req)
	return req, nil
}

func (s *Service) UpdateMapping(ctx context.Context, actor string, id int64, u MappingUpdate) error {
	if err := s.api.UpdateMapping(ctx, id, u); err != nil {
		return err
	}
	s.record(ctx, actor, audit.TypeMappingUpdated, fmt.Sprintf("mapping:%d", id), u)
	return nil
}

func (s *Service) DeleteMapping(ctx context.Context, actor string, id int64) error {
	if err := s.api.DeleteMapping(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.TypeMappingDeleted, fmt.Sprintf("mapping:%d", id), nil)
	return nil
}

// SearchCatalog runs one page of the add-questions search, dropping any
// question already present in the current group.
func (s *Service) SearchCatalog(ctx context.Context, f QuestionFilter) (QuestionPage, error) {
	page, err := s.api.ListQuestions(ctx, f)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(f.ExcludeIDs) == 0 {
		return page, nil
	}
	excluded := make(map[int64]struct{}, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	// Filter into a fresh slice; the page may be owned by the API
	// implementation (e.g. a cache) and must not be overwritten.
	kept := make([]Question, 0, len(page.Questions))
	for _, q := range page.Questions {
		if _, ok := excluded[q.ID]; !ok {
			kept = append(kept, q)
		}
	}
	page.Questions = kept
	return page, nil
}

// Lookups bundles the dropdown tables the editor needs up front.
type Lookups struct {
	Boards   []Board   `json:"boards"`
	Subjects []Subject `json:"subjects"`
}

// LoadLookups fetches the independent lookup tables concurrently and joins
// them in memory.
func (s *Service) LoadLookups(ctx context.Context) (Lookups, error) {
	var out Lookups
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		boards, err := s.api.ListBoards(ctx)
		if err != nil {
			return fmt.Errorf("boards: %w", err)
		}
		out.Boards = boards
		return nil
	})
	g.Go(func() error {
		subjects, err := s.api.ListSubjects(ctx)
		if err != nil {
			return fmt.Errorf("subjects: %w", err)
		}
		out.Subjects = subjects
		return nil
	})
	if err := g.Wait(); err != nil {
		return Lookups{}, err
	}
	return out, nil
}

// ChaptersBySubject and TopicsByChapter back the dependent dropdowns.
func (s *Service) ChaptersBySubject(ctx context.Context, subjectID int64) ([]Chapter, error) {
	return s.api.ListChaptersBySubject(ctx, subjectID)
}

func (s *Service) TopicsByChapter(ctx context.Context, chapterID int64) ([]Topic, error) {
	return s.api.ListTopicsByChapter(ctx, chapterID)
}

// record is best effort. A failed audit write must not fail the mutation
// that already happened upstream.
func (s *Service) record(ctx context.Context, actor, typ, key string, payload any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, typ, key, payload); err != nil {
		log.Printf("boardq: audit %s %s: %v", typ, key, err)
	}
}

func anyMissingChapterName(rows []MappingRow) bool {
	for _, r := range rows {
		if r.ChapterID != nil && r.ChapterName == "" {
			return true
		}
	}
	return false
}
