package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Deterministic ids and clock
// ---------------------------------------------------------------------------

// fixClock makes newID and now deterministic for the duration of the test.
// Every call to now advances by one minute so orderings are stable.
func fixClock(t *testing.T) {
	t.Helper()
	origID, origNow := newID, now

	seq := 0
	newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	t.Cleanup(func() { newID, now = origID, origNow })
}

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by username
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// In-memory client repository
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID      map[string]*domain.Client
	createErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) CreateMany(ctx context.Context, clients []*domain.Client) error {
	for _, c := range clients {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

// List mirrors the Mongo sort on name.
func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory report repository
// ---------------------------------------------------------------------------

type stubReportRepo struct {
	byID      map[string]*domain.ServiceReport
	createErr error
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{byID: make(map[string]*domain.ServiceReport)}
}

func cloneReport(r *domain.ServiceReport) *domain.ServiceReport {
	clone := *r
	clone.Photos = append([]string{}, r.Photos...)
	clone.ModificationHistory = append([]domain.Modification{}, r.ModificationHistory...)
	return &clone
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.ServiceReport) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[rep.ID] = cloneReport(rep)
	return nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.ServiceReport, error) {
	rep, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(rep), nil
}

func (r *stubReportRepo) List(_ context.Context, f ports.ListReportsFilter) ([]*domain.ServiceReport, error) {
	var out []*domain.ServiceReport
	for _, rep := range r.byID {
		if f.EmployeeID != "" && rep.EmployeeID != f.EmployeeID {
			continue
		}
		out = append(out, cloneReport(rep))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubReportRepo) Update(_ context.Context, id string, patch domain.ReportPatch, mod domain.Modification) (*domain.ServiceReport, error) {
	rep, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	patch.Apply(rep)
	rep.LastModified = mod.ModifiedAt
	rep.ModificationHistory = append(rep.ModificationHistory, mod)
	return cloneReport(rep), nil
}

// ---------------------------------------------------------------------------
// Spreadsheet parser and revoker stubs
// ---------------------------------------------------------------------------

type stubSheetParser struct {
	rows []ports.ClientRow
	err  error
}

func (p *stubSheetParser) Parse(_ string, r io.Reader) ([]ports.ClientRow, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return p.rows, p.err
}

type stubRevoker struct {
	revoked  map[string]time.Duration
	checkErr error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	r.revoked[token] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	if r.checkErr != nil {
		return false, r.checkErr
	}
	_, ok := r.revoked[token]
	return ok, nil
}

var errDBDown = errors.New("db unavailable")

// ---------------------------------------------------------------------------
// Actors
// ---------------------------------------------------------------------------

var (
	adminActor = &domain.User{ID: "admin-1", Username: "admin", Role: domain.RoleAdmin}
	bobActor   = &domain.User{ID: "emp-bob", Username: "bob", Role: domain.RoleEmployee}
	eveActor   = &domain.User{ID: "emp-eve", Username: "eve", Role: domain.RoleEmployee}
)
