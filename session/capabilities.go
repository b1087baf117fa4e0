package session

import "github.com/livetournois/tournament-manager/models"

// Capability names a guarded operation of the application. Role
// permissions are declared in one table instead of being scattered
// through call sites as role string comparisons.
type Capability string

const (
	CapManageUsers       Capability = "manage_users"
	CapManageGames       Capability = "manage_games"
	CapManageTournaments Capability = "manage_tournaments"
	CapManageTeams       Capability = "manage_teams"
	CapManageStaff       Capability = "manage_staff"
	CapManageSignups     Capability = "manage_signups"
	CapExportDocuments   Capability = "export_documents"
)

// grants is the single source of truth for what each role may do.
// Admins hold everything; organizers hold everything except account
// management.
var grants = map[models.Role]map[Capability]bool{
	models.RoleAdmin: {
		CapManageUsers:       true,
		CapManageGames:       true,
		CapManageTournaments: true,
		CapManageTeams:       true,
		CapManageStaff:       true,
		CapManageSignups:     true,
		CapExportDocuments:   true,
	},
	models.RoleOrganizer: {
		CapManageGames:       true,
		CapManageTournaments: true,
		CapManageTeams:       true,
		CapManageStaff:       true,
		CapManageSignups:     true,
		CapExportDocuments:   true,
	},
}

// Grants returns a copy of the capability set held by a role.
func Grants(role models.Role) []Capability {
	capabilities := make([]Capability, 0, len(grants[role]))
	for capability, allowed := range grants[role] {
		if allowed {
			capabilities = append(capabilities, capability)
		}
	}
	return capabilities
}
