package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"creatorlink/internal/api/clerk"
	"creatorlink/internal/models"
	"creatorlink/internal/storage/postgres"
	"creatorlink/internal/storage/redis"
)

// memRepo is an in-memory Repository. Slices keep insertion order; list
// methods sort the way the SQL store does.
type memRepo struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*models.User
	creators  []models.CreatorProfile
	business  []models.BusinessProfile
	travels   []models.Travel
	jobs      []models.Job
	apps      []models.Application
	saved     []models.SavedJob
	failWith  error
	expiredGC []models.Date
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*models.User{}}
}

func (r *memRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *memRepo) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[u.ID]; ok {
		return postgres.ErrDuplicate
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) GetUser(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) UpdateUserIdentity(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if existing, ok := r.users[u.ID]; ok {
		existing.Email, existing.FirstName, existing.LastName = u.Email, u.FirstName, u.LastName
	}
	return nil
}

func (r *memRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.users, id)
	r.creators = filter(r.creators, func(p models.CreatorProfile) bool { return p.UserID != id })
	r.travels = filter(r.travels, func(t models.Travel) bool { return t.CreatorID != id })
	return nil
}

func (r *memRepo) usernameTaken(name string) bool {
	for _, p := range r.creators {
		if p.Username == name {
			return true
		}
	}
	for _, p := range r.business {
		if p.Username == name {
			return true
		}
	}
	return false
}

func (r *memRepo) onboard(userID string, t models.UserType) {
	u := r.users[userID]
	u.UserType = &t
	u.OnboardingComplete = true
}

func (r *memRepo) OnboardCreator(_ context.Context, p *models.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usernameTaken(p.Username) {
		return postgres.ErrDuplicate
	}
	p.ID = r.nextID("cp")
	r.creators = append(r.creators, *p)
	r.onboard(p.UserID, models.UserTypeCreator)
	return nil
}

func (r *memRepo) OnboardBusiness(_ context.Context, p *models.BusinessProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usernameTaken(p.Username) {
		return postgres.ErrDuplicate
	}
	p.ID = r.nextID("bp")
	r.business = append(r.business, *p)
	r.onboard(p.UserID, models.UserTypeBusiness)
	return nil
}

func (r *memRepo) UsernameTaken(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usernameTaken(name), nil
}

func (r *memRepo) GetCreatorProfile(_ context.Context, userID string) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.creators {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetCreatorProfileByUsername(_ context.Context, name string) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.creators {
		if p.Username == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetBusinessProfile(_ context.Context, userID string) (*models.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.business {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) UpdateCreatorProfile(_ context.Context, userID string, upd models.ProfileUpdate) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.creators {
		if r.creators[i].UserID == userID {
			p := &r.creators[i]
			p.City, p.Country = upd.City, upd.Country
			p.Bio, p.InstagramURL, p.YoutubeURL = upd.Social.Bio, upd.Social.InstagramURL, upd.Social.YoutubeURL
			p.TiktokURL, p.OtherURL = upd.Social.TiktokURL, upd.Social.OtherURL
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) UpdateBusinessProfile(_ context.Context, userID string, upd models.ProfileUpdate) (*models.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.business {
		if r.business[i].UserID == userID {
			p := &r.business[i]
			p.City, p.Country = upd.City, upd.Country
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// SearchCreators returns newest first; creators are appended oldest first.
func (r *memRepo) SearchCreators(_ context.Context, search *string) ([]models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.CreatorProfile
	for i := len(r.creators) - 1; i >= 0; i-- {
		p := r.creators[i]
		if search != nil {
			needle := strings.ToLower(*search)
			bio := ""
			if p.Bio != nil {
				bio = *p.Bio
			}
			if !strings.Contains(strings.ToLower(p.Username), needle) && !strings.Contains(strings.ToLower(bio), needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) ListCreatorCountries(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range r.creators {
		if !seen[p.Country] {
			seen[p.Country] = true
			out = append(out, p.Country)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memRepo) ListTravels(_ context.Context, creatorID string) ([]models.Travel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := filter(r.travels, func(t models.Travel) bool { return t.CreatorID == creatorID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *memRepo) ListActiveTravels(_ context.Context, latestStart, earliestEnd models.Date) ([]models.Travel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return filter(r.travels, func(t models.Travel) bool {
		return !t.StartDate.After(latestStart) && !t.EndDate.Before(earliestEnd)
	}), nil
}

func (r *memRepo) GetTravel(_ context.Context, id, creatorID string) (*models.Travel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.travels {
		if t.ID == id && t.CreatorID == creatorID {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateTravel(_ context.Context, t *models.Travel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID("tr")
	r.travels = append(r.travels, *t)
	return nil
}

func (r *memRepo) UpdateTravel(_ context.Context, id, creatorID string, patch models.TravelPatch) (*models.Travel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.travels {
		t := &r.travels[i]
		if t.ID != id || t.CreatorID != creatorID {
			continue
		}
		if patch.DestinationCity != nil {
			t.DestinationCity = *patch.DestinationCity
		}
		if patch.DestinationCountry != nil {
			t.DestinationCountry = *patch.DestinationCountry
		}
		if patch.StartDate != nil {
			t.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			t.EndDate = *patch.EndDate
		}
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) DeleteTravel(_ context.Context, id, creatorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.travels)
	r.travels = filter(r.travels, func(t models.Travel) bool { return t.ID != id || t.CreatorID != creatorID })
	return len(r.travels) < before, nil
}

func (r *memRepo) DeleteExpiredTravels(_ context.Context, creatorID string, today models.Date) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expiredGC = append(r.expiredGC, today)
	before := len(r.travels)
	r.travels = filter(r.travels, func(t models.Travel) bool {
		return t.CreatorID != creatorID || !t.EndDate.Before(today)
	})
	return int64(before - len(r.travels)), nil
}

func (r *memRepo) ListJobs(_ context.Context) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Job, 0, len(r.jobs))
	for i := len(r.jobs) - 1; i >= 0; i-- {
		out = append(out, r.jobs[i])
	}
	return out, nil
}

func (r *memRepo) ListJobsByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	all, _ := r.ListJobs(ctx)
	return filter(all, func(j models.Job) bool { return j.BusinessOwnerID == ownerID }), nil
}

func (r *memRepo) GetJob(_ context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			cp := j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateJob(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = r.nextID("job")
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *memRepo) UpdateJob(_ context.Context, job *models.Job) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID && r.jobs[i].BusinessOwnerID == job.BusinessOwnerID {
			r.jobs[i] = *job
			cp := *job
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) DeleteJob(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.jobs)
	r.jobs = filter(r.jobs, func(j models.Job) bool { return j.ID != id || j.BusinessOwnerID != ownerID })
	return len(r.jobs) < before, nil
}

func (r *memRepo) CreateApplication(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.CreatorID == app.CreatorID {
			return postgres.ErrDuplicate
		}
	}
	app.ID = r.nextID("app")
	app.Status = models.ApplicationStatusPending
	r.apps = append(r.apps, *app)
	return nil
}

func (r *memRepo) HasApplied(_ context.Context, jobID, creatorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.CreatorID == creatorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) AppliedJobIDs(_ context.Context, creatorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, a := range r.apps {
		if a.CreatorID == creatorID {
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}

func (r *memRepo) ListApplicationsByCreator(ctx context.Context, creatorID string) ([]models.ApplicationWithJob, error) {
	var out []models.ApplicationWithJob
	for _, a := range r.apps {
		if a.CreatorID == creatorID {
			job, _ := r.GetJob(ctx, a.JobID)
			out = append(out, models.ApplicationWithJob{Application: a, Job: job})
		}
	}
	return out, nil
}

func (r *memRepo) ListApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	out := []models.Applicant{}
	for _, a := range r.apps {
		if a.JobID == jobID {
			p, _ := r.GetCreatorProfile(ctx, a.CreatorID)
			out = append(out, models.Applicant{Application: a, Creator: p})
		}
	}
	return out, nil
}

func (r *memRepo) SaveJob(_ context.Context, sj *models.SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.JobID == sj.JobID && s.CreatorID == sj.CreatorID {
			return postgres.ErrDuplicate
		}
	}
	sj.ID = r.nextID("saved")
	r.saved = append(r.saved, *sj)
	return nil
}

func (r *memRepo) IsJobSaved(_ context.Context, jobID, creatorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.JobID == jobID && s.CreatorID == creatorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) SavedJobIDs(_ context.Context, creatorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, s := range r.saved {
		if s.CreatorID == creatorID {
			ids = append(ids, s.JobID)
		}
	}
	return ids, nil
}

func (r *memRepo) UnsaveJob(_ context.Context, jobID, creatorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = filter(r.saved, func(s models.SavedJob) bool { return s.JobID != jobID || s.CreatorID != creatorID })
	return nil
}

func (r *memRepo) ListSavedJobs(ctx context.Context, creatorID string) ([]models.Job, error) {
	var out []models.Job
	for _, s := range r.saved {
		if s.CreatorID == creatorID {
			if j, _ := r.GetJob(ctx, s.JobID); j != nil {
				out = append(out, *j)
			}
		}
	}
	return out, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// memCache is a Cache backed by a single slot.
type memCache struct {
	countries   []string
	gets        int
	invalidated int
	err         error
}

func (c *memCache) GetCountries(context.Context) ([]string, error) {
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	if c.countries == nil {
		return nil, redis.ErrCacheMiss
	}
	return c.countries, nil
}

func (c *memCache) SetCountries(_ context.Context, countries []string) error {
	if c.err != nil {
		return c.err
	}
	c.countries = countries
	return nil
}

func (c *memCache) InvalidateCountries(context.Context) error {
	c.invalidated++
	c.countries = nil
	return c.err
}

type fakeIdentity struct {
	users       map[string]*clerk.User
	metadata    map[string]map[string]interface{}
	metadataErr error
}

func (f *fakeIdentity) GetUser(_ context.Context, id string) (*clerk.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, clerk.ErrNotFound
	}
	return u, nil
}

func (f *fakeIdentity) UpdateUserMetadata(_ context.Context, id string, md map[string]interface{}) error {
	if f.metadataErr != nil {
		return f.metadataErr
	}
	if f.metadata == nil {
		f.metadata = map[string]map[string]interface{}{}
	}
	f.metadata[id] = md
	return nil
}

type recordingNotifier struct {
	posted  []string
	applied []string
}

func (n *recordingNotifier) JobPosted(_ context.Context, job *models.Job) error {
	n.posted = append(n.posted, job.ID)
	return nil
}

func (n *recordingNotifier) ApplicationReceived(_ context.Context, job *models.Job, creator *models.CreatorProfile) error {
	n.applied = append(n.applied, job.ID+":"+creator.Username)
	return nil
}
