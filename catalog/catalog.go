package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one planned-maintenance template from the PMP plan workbook.
type Row struct {
	Line          string
	Machine       string
	Description   string
	Frequency     string
	RoleHint      string
	Documentation string
}

// Catalog holds the plan rows plus the lookup structures the admin forms
// need. All slices are sorted lexicographically.
type Catalog struct {
	Rows           []Row
	Lines          []string
	MachinesByLine map[string][]string
	RoleHints      []string
	Frequencies    []string
}

// Canonical column names recognized in the workbook header row, keyed by
// their normalized (trimmed, upper-cased) form. The plan historically uses
// both TÂCHE and TACHE depending on who last edited it.
const (
	colLine          = "LINE"
	colMachine       = "EQUIPEMENT"
	colTask          = "TÂCHE"
	colTaskPlain     = "TACHE"
	colFrequency     = "FREQUENCE"
	colRoleHint      = "INTERVENANT"
	colDocumentation = "EMPLACEMENT DOCUMENTATION"
)

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}

// Load reads every row of the named sheet and derives the lookup sets. An
// absent workbook yields an empty catalog, never an error; the result always
// reflects the file's current on-disk content.
func Load(path, sheet string) (*Catalog, error) {
	cat := &Catalog{MachinesByLine: map[string][]string{}}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cat, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open plan workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return cat, nil
	}

	cols := map[int]string{}
	for i, h := range rows[0] {
		switch normalizeHeader(h) {
		case colLine:
			cols[i] = "line"
		case colMachine:
			cols[i] = "machine"
		case colTask, colTaskPlain:
			cols[i] = "description"
		case colFrequency:
			cols[i] = "frequency"
		case colRoleHint:
			cols[i] = "rolehint"
		case colDocumentation:
			cols[i] = "documentation"
		}
	}

	for _, cells := range rows[1:] {
		var r Row
		for i, field := range cols {
			var v string
			if i < len(cells) {
				v = strings.TrimSpace(cells[i])
			}
			switch field {
			case "line":
				r.Line = v
			case "machine":
				r.Machine = v
			case "description":
				r.Description = v
			case "frequency":
				r.Frequency = v
			case "rolehint":
				r.RoleHint = v
			case "documentation":
				r.Documentation = v
			}
		}
		cat.Rows = append(cat.Rows, r)
	}

	lines := map[string]bool{}
	machines := map[string]map[string]bool{}
	hints := map[string]bool{}
	freqs := map[string]bool{}

	for _, r := range cat.Rows {
		if r.Line != "" {
			lines[r.Line] = true
		}
		if r.Line != "" && r.Machine != "" {
			if machines[r.Line] == nil {
				machines[r.Line] = map[string]bool{}
			}
			machines[r.Line][r.Machine] = true
		}
		// Empty hints and frequencies stay visible in the lookups so the
		// admin can spot incomplete plan rows.
		hints[r.RoleHint] = true
		freqs[r.Frequency] = true
	}

	cat.Lines = sortedKeys(lines)
	cat.RoleHints = sortedKeys(hints)
	cat.Frequencies = sortedKeys(freqs)
	for line, set := range machines {
		cat.MachinesByLine[line] = sortedKeys(set)
	}

	return cat, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
