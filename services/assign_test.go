package services

import (
	"testing"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planCatalog(rows ...catalog.Row) *catalog.Catalog {
	return &catalog.Catalog{Rows: rows, MachinesByLine: map[string][]string{}}
}

func TestAutoAssignCreatesOneTaskPerRow(t *testing.T) {
	db := newTestDB(t)
	op := seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1", "M2"})
	tech := seedUser(t, db, "tech1", constants.RoleTechnician, "LigneA", []string{"M2"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "Nettoyage filtre", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "Contrôle niveau", Frequency: "Hebdomadaire", RoleHint: "Conducteur", Documentation: "doc/m1.pdf"},
		catalog.Row{Line: "LigneA", Machine: "M2", Description: "Graissage", Frequency: "Hebdomadaire", RoleHint: "Mécanicien"},
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "Révision", Frequency: "Mensuel", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneB", Machine: "M1", Description: "Hors ligne", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
	)

	created, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var tasks []models.Task
	require.NoError(t, db.Order("id").Find(&tasks).Error)
	require.Len(t, tasks, 3)

	for _, task := range tasks {
		assert.Equal(t, "LigneA", task.Line)
		assert.Equal(t, constants.TaskStatusOpen, task.Status)
		assert.Equal(t, 3, task.Points)
		assert.Nil(t, task.ClosedAt)
	}
	assert.Equal(t, op.ID, tasks[0].AssignedToID)
	assert.Equal(t, op.ID, tasks[1].AssignedToID)
	assert.Equal(t, "doc/m1.pdf", tasks[1].Documentation)
	assert.Equal(t, tech.ID, tasks[2].AssignedToID)
}

func TestAutoAssignFrequencySubstringMatch(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "hebdo row", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "mensuel row", Frequency: "Mensuel", RoleHint: "Conducteur"},
	)

	created, err := AutoAssign(db, cat, "LigneA", "hebdo", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = AutoAssign(db, cat, "LigneA", "mensu", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var descs []string
	require.NoError(t, db.Model(&models.Task{}).Order("id").Pluck("description", &descs).Error)
	assert.Equal(t, []string{"hebdo row", "mensuel row"}, descs)
}

func TestAutoAssignRotationOffsets(t *testing.T) {
	db := newTestDB(t)
	op1 := seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1"})
	op2 := seedUser(t, db, "op2", constants.RoleOperator, "LigneA", []string{"M1"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "Tâche hebdo", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "Tâche mensuelle", Frequency: "Mensuel", RoleHint: "Conducteur"},
	)

	// Weekly runs with offset 0, monthly with offset 1, so the two campaigns
	// pick different users from the same candidate list.
	_, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
	require.NoError(t, err)
	_, err = AutoAssign(db, cat, "LigneA", MonthlyFilter, MonthlyOffset)
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, db.Order("id").Find(&tasks).Error)
	require.Len(t, tasks, 2)
	assert.Equal(t, op1.ID, tasks[0].AssignedToID)
	assert.Equal(t, op2.ID, tasks[1].AssignedToID)
}

func TestAutoAssignPrefersUnusedUsers(t *testing.T) {
	db := newTestDB(t)
	op1 := seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1", "M2"})
	op2 := seedUser(t, db, "op2", constants.RoleOperator, "LigneA", []string{"M1", "M2"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "a", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M2", Description: "b", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
	)

	created, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	var tasks []models.Task
	require.NoError(t, db.Order("id").Find(&tasks).Error)
	assert.Equal(t, op1.ID, tasks[0].AssignedToID)
	// Second group avoids the user already chosen in this run.
	assert.Equal(t, op2.ID, tasks[1].AssignedToID)
}

func TestAutoAssignFallsBackWhenAllUsed(t *testing.T) {
	db := newTestDB(t)
	op := seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1", "M2"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "a", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M2", Description: "b", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
	)

	created, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("assigned_to = ?", op.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAutoAssignSkipsGroupsWithoutCandidates(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1"})
	// Wrong line, wrong machine, wrong role: none may take the M2 technician rows.
	seedUser(t, db, "op2", constants.RoleOperator, "LigneB", []string{"M2"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "covered", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M2", Description: "uncovered", Frequency: "Hebdomadaire", RoleHint: "Mécanicien"},
	)

	created, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var descs []string
	require.NoError(t, db.Model(&models.Task{}).Pluck("description", &descs).Error)
	assert.Equal(t, []string{"covered"}, descs)
}

func TestAutoAssignNoMatchesReturnsZero(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "mensuel", Frequency: "Mensuel", RoleHint: "Conducteur"},
	)

	created, err := AutoAssign(db, cat, "LigneA", "hebdo", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	created, err = AutoAssign(db, cat, "LigneZ", "mensu", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestAutoAssignIsNotIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "op1", constants.RoleOperator, "LigneA", []string{"M1"})

	cat := planCatalog(
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "a", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
		catalog.Row{Line: "LigneA", Machine: "M1", Description: "b", Frequency: "Hebdomadaire", RoleHint: "Conducteur"},
	)

	for i := 0; i < 2; i++ {
		created, err := AutoAssign(db, cat, "LigneA", WeeklyFilter, WeeklyOffset)
		require.NoError(t, err)
		assert.Equal(t, 2, created)
	}

	// Each invocation creates a full new batch; there is no deduplication.
	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}
