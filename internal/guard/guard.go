// Package guard decides which views and actions a session tier may reach.
// It only shapes the UI; the API enforces authorization on every call.
package guard

import "github.com/naveenspark/moviemania/pkg/domain"

// View identifies a top-level screen.
type View int

const (
	Home View = iota
	Login
	Register
	Catalog
	Admin
)

func (v View) String() string {
	switch v {
	case Login:
		return "Login"
	case Register:
		return "Register"
	case Catalog:
		return "Movies"
	case Admin:
		return "Admin Dashboard"
	default:
		return "Home"
	}
}

// Action is what a nav item does when chosen.
type Action int

const (
	ActionNavigate Action = iota
	ActionLogout
)

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Key    string
	Label  string
	View   View
	Action Action
}

var (
	navHome     = NavItem{Key: "1", Label: "Home", View: Home}
	navMovies   = NavItem{Key: "2", Label: "Movies", View: Catalog}
	navAdmin    = NavItem{Key: "3", Label: "Admin Dashboard", View: Admin}
	navLogin    = NavItem{Key: "l", Label: "Login", View: Login}
	navRegister = NavItem{Key: "r", Label: "Register", View: Register}
	navLogout   = NavItem{Key: "x", Label: "Logout", Action: ActionLogout}
)

// NavItems returns the navigation entries shown for role, in display order.
func NavItems(role domain.Role) []NavItem {
	switch role {
	case domain.RoleAdmin:
		return []NavItem{navHome, navMovies, navAdmin, navLogout}
	case domain.RoleUser:
		return []NavItem{navHome, navMovies, navLogout}
	default:
		return []NavItem{navHome, navMovies, navLogin, navRegister}
	}
}

// Permitted reports whether role may open view.
func Permitted(role domain.Role, v View) bool {
	switch v {
	case Home, Catalog:
		return true
	case Login, Register:
		return role == domain.RoleAnonymous
	case Admin:
		return role == domain.RoleAdmin
	}
	return false
}

// PermittedViews lists every view role may open.
func PermittedViews(role domain.Role) []View {
	var out []View
	for _, v := range []View{Home, Login, Register, Catalog, Admin} {
		if Permitted(role, v) {
			out = append(out, v)
		}
	}
	return out
}

// Resolve returns v when permitted and Home otherwise.
func Resolve(role domain.Role, v View) View {
	if Permitted(role, v) {
		return v
	}
	return Home
}

// CanComment reports whether the catalog offers the Add Comment action.
// Admins manage the catalog and do not comment.
func CanComment(role domain.Role) bool {
	return role == domain.RoleUser
}

// CanManage reports whether catalog create/update/delete is offered.
func CanManage(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// Lookup finds the nav item bound to key for role.
func Lookup(role domain.Role, key string) (NavItem, bool) {
	for _, item := range NavItems(role) {
		if item.Key == key {
			return item, true
		}
	}
	return NavItem{}, false
}
