package domain

// View identifies which notification view a user is routed to. The values
// are the backend's role strings.
type View string

const (
	ViewEtudiant         View = "etudiant"
	ViewParent           View = "parent"
	ViewEnseignant       View = "enseignant"
	ViewAdminSysteme     View = "adminsysteme"
	ViewAdminPedagogique View = "adminpedagogique"
	ViewAdminContenue    View = "admincontenue"
)

// MapRoleToView maps a resolved role string onto a view. The function is
// total: anything outside the six recognized values, including the empty
// string, falls back to the student view.
func MapRoleToView(role string) View {
	switch View(role) {
	case ViewEtudiant, ViewParent, ViewEnseignant,
		ViewAdminSysteme, ViewAdminPedagogique, ViewAdminContenue:
		return View(role)
	default:
		return ViewEtudiant
	}
}

// Heading returns the notification page heading for the view.
func (v View) Heading() string {
	switch v {
	case ViewParent:
		return "Notifications Parents"
	case ViewEnseignant:
		return "Notifications Enseignant"
	case ViewAdminSysteme:
		return "Notifications Admin Système"
	case ViewAdminPedagogique:
		return "Notifications Admin Pédagogique"
	case ViewAdminContenue:
		return "Notifications Admin Contenue"
	default:
		return "Mes Notifications"
	}
}
