package services

import (
	"strings"
	"time"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"

	"gorm.io/gorm"
)

// Frequency filters and rotation offsets for the two assignment campaigns.
// The offsets differ on purpose: when the weekly and monthly candidate lists
// coincide, the monthly run starts one position further so both campaigns do
// not land on the same user.
const (
	WeeklyFilter  = "hebdo"
	WeeklyOffset  = 0
	MonthlyFilter = "mensu"
	MonthlyOffset = 1
)

const autoAssignPoints = 3

type groupKey struct {
	Machine string
	Role    string
}

// AutoAssign creates one open task per plan row matching the requested line
// and frequency filter (case-insensitive substring match). Rows are grouped
// by (machine, classified role); each group gets a single assignee picked by
// rotating the eligible-user list by offset, preferring users not yet chosen
// in this run. Groups without eligible users are skipped silently. The whole
// batch is one transaction; the returned count is the number of tasks
// created.
func AutoAssign(db *gorm.DB, cat *catalog.Catalog, line, freqFilter string, offset int) (int, error) {
	freqFilter = strings.ToLower(freqFilter)

	var filtered []catalog.Row
	for _, r := range cat.Rows {
		if r.Line == line && strings.Contains(strings.ToLower(r.Frequency), freqFilter) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return 0, nil
	}

	// Groups are processed in first-appearance order so the used-user
	// rotation is deterministic for a given plan.
	groups := map[groupKey][]catalog.Row{}
	var order []groupKey
	for _, r := range filtered {
		k := groupKey{Machine: r.Machine, Role: catalog.ClassifyRole(r.RoleHint)}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		used := map[uint]bool{}
		now := time.Now()

		for _, k := range order {
			var users []models.User
			if err := tx.
				Where("role = ? AND prod_line = ?", k.Role, line).
				Order("id").
				Find(&users).Error; err != nil {
				return err
			}

			var candidates []uint
			for _, u := range users {
				if u.HasMachine(k.Machine) {
					candidates = append(candidates, u.ID)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			fresh := make([]uint, 0, len(candidates))
			for _, id := range candidates {
				if !used[id] {
					fresh = append(fresh, id)
				}
			}
			if len(fresh) == 0 {
				fresh = candidates
			}
			chosen := fresh[offset%len(fresh)]
			used[chosen] = true

			for _, r := range groups[k] {
				task := models.Task{
					Line:          line,
					Machine:       k.Machine,
					Description:   r.Description,
					AssignedToID:  chosen,
					Status:        constants.TaskStatusOpen,
					Points:        autoAssignPoints,
					Frequency:     r.Frequency,
					Documentation: r.Documentation,
					CreatedAt:     now,
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
