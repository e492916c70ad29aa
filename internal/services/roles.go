package services

type RoleLookupService interface {
	SuggestTitles(jdText string) []string
}

type roleLookupService struct {
	norm     *Normalizer
	catalog  *RoleCatalog
	maxRoles int
}

func NewRoleLookupService(norm *Normalizer, catalog *RoleCatalog, maxRoles int) RoleLookupService {
	if maxRoles <= 0 {
		maxRoles = 4
	}
	return &roleLookupService{
		norm:     norm,
		catalog:  catalog,
		maxRoles: maxRoles,
	}
}

// SuggestTitles implements RoleLookupService. The catalog is walked in file
// order; titles reachable through several keywords appear once, first hit
// wins.
func (r *roleLookupService) SuggestTitles(jdText string) []string {
	seen := make(map[string]struct{})
	var titles []string

	for _, entry := range r.catalog.Entries() {
		if !r.norm.Matches(entry.Keyword, jdText, MatchFuzzy) {
			continue
		}
		for _, title := range entry.Titles {
			if _, dup := seen[title]; dup {
				continue
			}
			seen[title] = struct{}{}
			titles = append(titles, title)
			if len(titles) == r.maxRoles {
				return titles
			}
		}
	}

	return titles
}
