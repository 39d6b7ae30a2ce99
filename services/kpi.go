package services

import (
	"errors"
	"math"
	"sort"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"

	"gorm.io/gorm"
)

// KpiFilters narrows KPI queries. Empty fields are ignored; the date bounds
// compare against the date portion of created_at.
type KpiFilters struct {
	Line      string
	Machine   string
	StartDate string
	EndDate   string
}

func (f KpiFilters) apply(q *gorm.DB) *gorm.DB {
	if f.Line != "" {
		q = q.Where("line = ?", f.Line)
	}
	if f.Machine != "" {
		q = q.Where("machine = ?", f.Machine)
	}
	if f.StartDate != "" {
		q = q.Where("DATE(created_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("DATE(created_at) <= ?", f.EndDate)
	}
	return q
}

type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type KpiResult struct {
	Total          int64              `json:"total_tasks"`
	Done           int64              `json:"done_tasks"`
	Rate           int                `json:"rate"`
	Color          string             `json:"color"`
	Score          int                `json:"score"`
	TopOperators   []LeaderboardEntry `json:"top_operators"`
	TopTechnicians []LeaderboardEntry `json:"top_technicians"`
	CriticalOpen   []models.Task      `json:"critical_open"`
}

// ComputeKpis aggregates completion totals, the offset-adjusted rate and
// score, the color band, per-role leaderboards and the most critical open
// tasks for the given filters.
func ComputeKpis(db *gorm.DB, f KpiFilters) (*KpiResult, error) {
	res := &KpiResult{}

	if err := f.apply(db.Model(&models.Task{})).Count(&res.Total).Error; err != nil {
		return nil, err
	}
	if err := f.apply(db.Model(&models.Task{})).
		Where("status = ?", constants.TaskStatusClosed).
		Count(&res.Done).Error; err != nil {
		return nil, err
	}

	rate := 0
	if res.Total > 0 {
		rate = int(math.Round(float64(res.Done) * 100 / float64(res.Total)))
	}

	var score int
	if err := f.apply(db.Model(&models.Task{})).
		Where("status = ?", constants.TaskStatusClosed).
		Select("COALESCE(SUM(points), 0)").
		Scan(&score).Error; err != nil {
		return nil, err
	}

	var cfg models.KpiSettings
	if err := db.First(&cfg).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rate = clampRate(rate + cfg.RateOffset)
	score += cfg.ScoreOffset

	res.Rate = rate
	res.Score = score
	res.Color = rateColor(rate)

	var err error
	if res.TopOperators, err = leaderboard(db, f, constants.RoleOperator); err != nil {
		return nil, err
	}
	if res.TopTechnicians, err = leaderboard(db, f, constants.RoleTechnician); err != nil {
		return nil, err
	}

	if err := f.apply(db.Where("status = ?", constants.TaskStatusOpen)).
		Order("points DESC, id DESC").
		Limit(3).
		Find(&res.CriticalOpen).Error; err != nil {
		return nil, err
	}

	return res, nil
}

func clampRate(rate int) int {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// rateColor bands the offset-adjusted rate: green from 80, orange from 60,
// red below.
func rateColor(rate int) string {
	switch {
	case rate >= 80:
		return "green"
	case rate >= 60:
		return "orange"
	default:
		return "red"
	}
}

// leaderboard ranks up to three users of the role by points earned on
// matching closed tasks. Users with no matching points are still listed;
// ties keep ascending-id order.
func leaderboard(db *gorm.DB, f KpiFilters, role string) ([]LeaderboardEntry, error) {
	var users []models.User
	if err := db.Where("role = ?", role).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	type pointsRow struct {
		AssignedTo uint
		Points     int
	}
	var sums []pointsRow
	if err := f.apply(db.Model(&models.Task{})).
		Where("status = ?", constants.TaskStatusClosed).
		Select("assigned_to, COALESCE(SUM(points), 0) AS points").
		Group("assigned_to").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	byUser := map[uint]int{}
	for _, s := range sums {
		byUser[s.AssignedTo] = s.Points
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:   u.ID,
			Username: u.Username,
			Points:   byUser[u.ID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}
	return entries, nil
}

// EnsureKpiSettings seeds the singleton settings row with zero offsets when
// the table is empty.
func EnsureKpiSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.KpiSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return db.Create(&models.KpiSettings{}).Error
	}
	return nil
}

// GetKpiSettings returns the singleton settings row.
func GetKpiSettings(db *gorm.DB) (*models.KpiSettings, error) {
	var cfg models.KpiSettings
	if err := db.First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateKpiSettings overwrites both offsets on the singleton row.
func UpdateKpiSettings(db *gorm.DB, rateOffset, scoreOffset int) error {
	return db.Model(&models.KpiSettings{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"rate_offset":  rateOffset,
			"score_offset": scoreOffset,
		}).Error
}
