package persistence

import "residence/server/internal/models"

// Merge overlays remote onto local. Non-empty remote collections and
// present remote singletons replace the local ones; empty or absent
// remote values leave local untouched. Top-level keys the models do not
// declare are taken from remote over local.
func Merge(local models.AllData, remote *models.AllData) models.AllData {
	merged := local.Clone()
	if remote == nil {
		return merged
	}
	r := remote.Clone()

	if len(r.Projects) > 0 {
		merged.Projects = r.Projects
	}
	if len(r.News) > 0 {
		merged.News = r.News
	}
	if len(r.Faq) > 0 {
		merged.Faq = r.Faq
	}
	if len(r.Team) > 0 {
		merged.Team = r.Team
	}
	if len(r.Vacancies) > 0 {
		merged.Vacancies = r.Vacancies
	}
	if len(r.PageSettings) > 0 {
		merged.PageSettings = r.PageSettings
	}
	if r.HomeContent != nil {
		merged.HomeContent = r.HomeContent
	}
	if r.ProjectFilters != nil {
		merged.ProjectFilters = r.ProjectFilters
	}
	if r.SiteSettings != nil {
		merged.SiteSettings = r.SiteSettings
	}
	for key, raw := range r.Extra {
		if merged.Extra == nil {
			merged.Extra = models.Extra{}
		}
		merged.Extra[key] = raw
	}
	return merged
}
