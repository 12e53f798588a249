package config

import "sort"

// Role describes one open position candidates can apply to
type Role struct {
	Slug         string
	Name         string
	ChallengeURL string
	Description  string
	Active       bool
}

// roles maps role slugs to the positions currently defined, each with the
// GitHub link of its technical challenge. Read-only at runtime.
var roles = map[string]Role{
	"sdet-jr": {
		Slug:         "sdet-jr",
		Name:         "SDET Jr",
		ChallengeURL: "https://github.com/voidr-co/sdet-jr-challenge",
		Description:  "Software Development Engineer in Test - Junior",
		Active:       true,
	},
	"sdet-pleno": {
		Slug:         "sdet-pleno",
		Name:         "SDET Pleno",
		ChallengeURL: "https://github.com/voidr-co/sdet-pleno-challenge",
		Description:  "Software Development Engineer in Test - Mid-level",
		Active:       true,
	},
	"fullstack-jr": {
		Slug:         "fullstack-jr",
		Name:         "Full Stack Developer Jr",
		ChallengeURL: "https://github.com/voidr-co/fullstack-jr-challenge",
		Description:  "Junior Full Stack Developer",
		Active:       true,
	},
	"fullstack-pleno": {
		Slug:         "fullstack-pleno",
		Name:         "Full Stack Developer Pleno",
		ChallengeURL: "https://github.com/voidr-co/fullstack-pleno-challenge",
		Description:  "Mid-level Full Stack Developer",
		Active:       true,
	},
	"frontend-jr": {
		Slug:         "frontend-jr",
		Name:         "Frontend Developer Jr",
		ChallengeURL: "https://github.com/voidr-co/frontend-jr-challenge",
		Description:  "Junior Frontend Developer",
		Active:       true,
	},
	"backend-jr": {
		Slug:         "backend-jr",
		Name:         "Backend Developer Jr",
		ChallengeURL: "https://github.com/voidr-co/backend-jr-challenge",
		Description:  "Junior Backend Developer",
		Active:       true,
	},
}

// GetRole returns the role for a slug, if defined
func GetRole(slug string) (Role, bool) {
	role, ok := roles[slug]
	return role, ok
}

// IsValidRole reports whether the slug resolves to a known, active role
func IsValidRole(slug string) bool {
	role, ok := roles[slug]
	return ok && role.Active
}

// ActiveRoles returns all roles currently accepting applications
func ActiveRoles() []Role {
	active := make([]Role, 0, len(roles))
	for _, role := range roles {
		if role.Active {
			active = append(active, role)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Slug < active[j].Slug })
	return active
}
