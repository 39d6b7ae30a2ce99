package models

import "strings"

// User is an account created by an administrator. MachineAssigned stores the
// set of machine names as a "|"-delimited column; use Machines/SetMachines at
// the domain boundary instead of touching the raw string.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Username        string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash    string `gorm:"not null" json:"-"`
	Role            string `gorm:"not null" json:"role"`
	ProdLine        string `json:"prod_line"`
	MachineAssigned string `json:"machine_assigned"`
}

func (u *User) Machines() []string {
	if u.MachineAssigned == "" {
		return nil
	}
	parts := strings.Split(u.MachineAssigned, "|")
	machines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			machines = append(machines, p)
		}
	}
	return machines
}

func (u *User) SetMachines(machines []string) {
	u.MachineAssigned = strings.Join(machines, "|")
}

func (u *User) HasMachine(machine string) bool {
	for _, m := range u.Machines() {
		if m == machine {
			return true
		}
	}
	return false
}
