package memory

import (
	"slices"
	"sync"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

type Repository struct {
	metadata *models.LeagueMetadata
	teams    []models.TeamInfo
	draft    *models.DraftBook
	audits   map[int][]models.TeamWeekAudit
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{audits: make(map[int][]models.TeamWeekAudit)}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

func (r *Repository) SaveTeams(teams []models.TeamInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = slices.Clone(teams)
}

func (r *Repository) GetTeams() []models.TeamInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.teams)
}

func (r *Repository) SaveDraft(book *models.DraftBook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = book
}

func (r *Repository) GetDraft() *models.DraftBook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.draft
}

// SaveWeekAudit stores the audits of a completed week.
func (r *Repository) SaveWeekAudit(week int, audits []models.TeamWeekAudit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits[week] = slices.Clone(audits)
}

func (r *Repository) GetWeekAudit(week int) ([]models.TeamWeekAudit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	audits, ok := r.audits[week]
	return slices.Clone(audits), ok
}
