package models

// KpiSettings is a singleton row. The offsets are added to every KPI query
// result: RateOffset before clamping the rate to [0,100], ScoreOffset without
// clamping.
type KpiSettings struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	RateOffset  int  `gorm:"default:0" json:"rate_offset"`
	ScoreOffset int  `gorm:"default:0" json:"score_offset"`
}
