package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
)

func testCatalog() *domain.StatusCatalog {
	names := []domain.StatusName{
		domain.StatusNew,
		domain.StatusQAReview,
		domain.StatusQAManagerReview,
		domain.StatusPending,
		domain.StatusLicenseAgent,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusFinalRejected,
	}
	statuses := make([]domain.Status, 0, len(names))
	for i, name := range names {
		statuses = append(statuses, domain.Status{ID: int64(i + 1), Name: name})
	}
	return domain.NewStatusCatalog(statuses)
}

func mustStatusID(catalog *domain.StatusCatalog, name domain.StatusName) int64 {
	id, err := catalog.IDByName(name)
	if err != nil {
		panic(err)
	}
	return id
}

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	byID       map[int64]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byUsername: make(map[string]*domain.User),
		byID:       make(map[int64]*domain.User),
	}
	for _, u := range users {
		r.byUsername[u.Username] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(r.byID) + 1)
	r.byUsername[user.Username] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) UpdateAssignedIP(_ context.Context, id int64, assignedIP *string) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.AssignedIP = assignedIP
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

type fakeLeadRepo struct {
	leads      map[int64]*domain.Lead
	nextID     int64
	lastFilter repository.LeadFilter
}

func newFakeLeadRepo(leads ...*domain.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: make(map[int64]*domain.Lead), nextID: 1}
	for _, l := range leads {
		r.leads[l.ID] = l
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
	return r
}

func (r *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	lead.ID = r.nextID
	r.nextID++
	copied := *lead
	r.leads[lead.ID] = &copied
	return nil
}

func (r *fakeLeadRepo) Update(_ context.Context, lead *domain.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *lead
	r.leads[lead.ID] = &copied
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id int64) (*domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *lead
	return &copied, nil
}

func (r *fakeLeadRepo) List(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, int64, error) {
	r.lastFilter = filter
	var out []domain.Lead
	for _, l := range r.leads {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) CountByStatus(_ context.Context) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, l := range r.leads {
		counts[l.StatusID]++
	}
	return counts, nil
}

type fakeTrackingRepo struct {
	statusChanges []domain.StatusChangeRecord
	failWrites    error
}

func (r *fakeTrackingRepo) CreateStatusChange(_ context.Context, rec *domain.StatusChangeRecord) error {
	if r.failWrites != nil {
		return r.failWrites
	}
	rec.ID = int64(len(r.statusChanges) + 1)
	r.statusChanges = append(r.statusChanges, *rec)
	return nil
}

func (r *fakeTrackingRepo) CreateAssignmentChange(_ context.Context, _ *domain.AssignmentChangeRecord) error {
	return r.failWrites
}

func (r *fakeTrackingRepo) ListStatusHistory(_ context.Context, leadID int64) ([]domain.StatusChangeRecord, error) {
	var out []domain.StatusChangeRecord
	for i := len(r.statusChanges) - 1; i >= 0; i-- {
		if r.statusChanges[i].LeadID == leadID {
			out = append(out, r.statusChanges[i])
		}
	}
	return out, nil
}
