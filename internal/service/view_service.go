package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"crm-console/internal/crmapi"
	"crm-console/internal/listview"
	"crm-console/internal/model"
	"crm-console/pkg/logger"
)

// ViewRequest carries the inputs a console changed since its last render.
// Nil fields leave the stored state alone.
type ViewRequest struct {
	Search  *string
	Filters map[string]string
	Sort    *listview.SortConfig
	Page    *int
	Refresh bool
}

// ViewPage is one rendered page of a list view.
type ViewPage struct {
	Resource   string              `json:"resource"`
	Rows       []model.Record      `json:"data"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"total_pages"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Search     string              `json:"search"`
	Filters    map[string]string   `json:"filters"`
	Sort       listview.SortConfig `json:"sort"`
	FetchedAt  time.Time           `json:"fetched_at"`
}

type ViewService interface {
	Render(ctx context.Context, sess model.Session, res model.Resource, req ViewRequest) (*ViewPage, error)
	ToggleSort(ctx context.Context, sess model.Session, res model.Resource, key string) (*ViewPage, error)
	// Records returns the whole unfiltered source collection.
	Records(ctx context.Context, sess model.Session, res model.Resource) ([]model.Record, error)
	Collection(sessionKey string, res model.Resource) *Collection
	Forget(sessionKey string)
	// Sweep drops sessions idle for longer than idle and returns how many.
	Sweep(idle time.Duration) int
}

type viewSession struct {
	mu          sync.Mutex
	collections map[string]*Collection
	states      map[string]*listview.ListState
	lastSeen    time.Time
}

type viewService struct {
	api      RecordAPI
	pageSize int
	log      *logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*viewSession
}

func NewViewService(api RecordAPI, pageSize int) ViewService {
	if pageSize < 1 {
		pageSize = listview.DefaultPageSize
	}
	return &viewService{
		api:      api,
		pageSize: pageSize,
		log:      logger.New("VIEWS"),
		now:      time.Now,
		sessions: make(map[string]*viewSession),
	}
}

func (s *viewService) session(key string) *viewSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.sessions[key]
	if !ok {
		vs = &viewSession{
			collections: make(map[string]*Collection),
			states:      make(map[string]*listview.ListState),
		}
		s.sessions[key] = vs
	}
	vs.lastSeen = s.now()
	return vs
}

// entry returns the collection and state of one resource, creating both.
func (s *viewService) entry(key string, res model.Resource) (*viewSession, *Collection, *listview.ListState) {
	vs := s.session(key)
	vs.mu.Lock()
	defer vs.mu.Unlock()
	col, ok := vs.collections[res.Name]
	if !ok {
		col = NewCollection()
		vs.collections[res.Name] = col
	}
	state, ok := vs.states[res.Name]
	if !ok {
		state = listview.NewListState()
		vs.states[res.Name] = state
	}
	return vs, col, state
}

func (s *viewService) Collection(sessionKey string, res model.Resource) *Collection {
	_, col, _ := s.entry(sessionKey, res)
	return col
}

// load fetches the collection when forced or when it is missing or stale.
// A failed fetch leaves the cached records as they were.
func (s *viewService) load(ctx context.Context, sess model.Session, res model.Resource, col *Collection, force bool) (bool, error) {
	if !force && !col.NeedsFetch() {
		return false, nil
	}
	raws, err := s.api.List(ctx, sess.Token, res.ListPath)
	if err != nil {
		return false, err
	}
	records, err := res.DecodeAll(raws)
	if err != nil {
		return false, fmt.Errorf("%w: %v", crmapi.ErrMalformed, err)
	}
	replaced := col.Replace(records)
	s.log.Debug("loaded %d %s for session %s", len(records), res.Name, shortKey(sess.Key))
	return replaced, nil
}

func (s *viewService) Render(ctx context.Context, sess model.Session, res model.Resource, req ViewRequest) (*ViewPage, error) {
	vs, col, state := s.entry(sess.Key, res)

	replaced, err := s.load(ctx, sess, res, col, req.Refresh)
	if err != nil {
		return nil, err
	}

	vs.mu.Lock()
	// page first so that a changed search, filter or source wins
	if req.Page != nil {
		state.SetPage(*req.Page)
	}
	if req.Search != nil {
		state.SetSearch(*req.Search)
	}
	for field, value := range req.Filters {
		if res.AllowsFilter(field) {
			state.SetFilter(field, value)
		}
	}
	if req.Sort != nil {
		state.SetSort(*req.Sort)
	}
	if replaced {
		state.SetSource()
	}
	snapshot := state.Clone()
	vs.mu.Unlock()

	return s.render(res, col, snapshot), nil
}

func (s *viewService) ToggleSort(ctx context.Context, sess model.Session, res model.Resource, key string) (*ViewPage, error) {
	vs, col, state := s.entry(sess.Key, res)
	replaced, err := s.load(ctx, sess, res, col, false)
	if err != nil {
		return nil, err
	}

	vs.mu.Lock()
	if replaced {
		state.SetSource()
	}
	state.ToggleSort(key)
	snapshot := state.Clone()
	vs.mu.Unlock()

	return s.render(res, col, snapshot), nil
}

func (s *viewService) render(res model.Resource, col *Collection, state listview.ListState) *ViewPage {
	result := listview.Run(col.Snapshot(), state.Query(res.SearchFields, s.pageSize))
	return &ViewPage{
		Resource:   res.Name,
		Rows:       result.Rows,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       state.Page,
		PageSize:   s.pageSize,
		Search:     state.Search,
		Filters:    maps.Clone(state.Filters),
		Sort:       state.Sort,
		FetchedAt:  col.FetchedAt(),
	}
}

func (s *viewService) Records(ctx context.Context, sess model.Session, res model.Resource) ([]model.Record, error) {
	vs, col, state := s.entry(sess.Key, res)
	replaced, err := s.load(ctx, sess, res, col, false)
	if err != nil {
		return nil, err
	}
	if replaced {
		vs.mu.Lock()
		state.SetSource()
		vs.mu.Unlock()
	}
	return col.Snapshot(), nil
}

func (s *viewService) Forget(sessionKey string) {
	s.mu.Lock()
	delete(s.sessions, sessionKey)
	s.mu.Unlock()
}

func (s *viewService) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for key, vs := range s.sessions {
		if vs.lastSeen.Before(cutoff) {
			delete(s.sessions, key)
			dropped++
		}
	}
	return dropped
}
