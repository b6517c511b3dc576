package content

import (
	"residence/server/internal/models"
)

func projectID(p models.Project) string     { return p.ID }
func newsID(n models.NewsItem) string       { return n.ID }
func memberID(m models.TeamMember) string   { return m.ID }
func vacancyID(v models.Vacancy) string     { return v.ID }
func faqID(c models.FaqCategory) string     { return c.ID }
func pagePath(p models.PageSettings) string { return p.Path }

// Projects

func (s *Store) Projects() []models.Project {
	return s.Snapshot().Projects
}

func (s *Store) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := findByID(s.data.Projects, id, projectID)
	if !ok {
		return p, false
	}
	return models.Clone(p), true
}

// ProjectBySlug returns the first project with the given slug
func (s *Store) ProjectBySlug(slug string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Projects {
		if p.Slug == slug {
			return models.Clone(p), true
		}
	}
	return models.Project{}, false
}

func (s *Store) AddProject(p models.Project) {
	p = models.Clone(p)
	s.mutate(func(d *models.AllData) bool {
		d.Projects = append(d.Projects, p)
		return true
	})
}

func (s *Store) UpdateProject(p models.Project) {
	p = models.Clone(p)
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.Projects, p.ID, projectID, p)
	})
}

func (s *Store) DeleteProject(id string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.Projects, removed = removeByID(d.Projects, id, projectID)
		return removed
	})
}

// News

func (s *Store) News() []models.NewsItem {
	return s.Snapshot().News
}

func (s *Store) NewsItem(id string) (models.NewsItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.data.News, id, newsID)
}

func (s *Store) AddNews(n models.NewsItem) {
	s.mutate(func(d *models.AllData) bool {
		d.News = append(d.News, n)
		return true
	})
}

func (s *Store) UpdateNews(n models.NewsItem) {
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.News, n.ID, newsID, n)
	})
}

func (s *Store) DeleteNews(id string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.News, removed = removeByID(d.News, id, newsID)
		return removed
	})
}

// Team

func (s *Store) Team() []models.TeamMember {
	return s.Snapshot().Team
}

func (s *Store) AddTeamMember(m models.TeamMember) {
	s.mutate(func(d *models.AllData) bool {
		d.Team = append(d.Team, m)
		return true
	})
}

func (s *Store) UpdateTeamMember(m models.TeamMember) {
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.Team, m.ID, memberID, m)
	})
}

func (s *Store) DeleteTeamMember(id string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.Team, removed = removeByID(d.Team, id, memberID)
		return removed
	})
}

// Vacancies

func (s *Store) Vacancies() []models.Vacancy {
	return s.Snapshot().Vacancies
}

func (s *Store) AddVacancy(v models.Vacancy) {
	s.mutate(func(d *models.AllData) bool {
		d.Vacancies = append(d.Vacancies, v)
		return true
	})
}

func (s *Store) UpdateVacancy(v models.Vacancy) {
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.Vacancies, v.ID, vacancyID, v)
	})
}

func (s *Store) DeleteVacancy(id string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.Vacancies, removed = removeByID(d.Vacancies, id, vacancyID)
		return removed
	})
}

// FAQ

func (s *Store) Faq() []models.FaqCategory {
	return s.Snapshot().Faq
}

func (s *Store) AddFaqCategory(c models.FaqCategory) {
	c.Questions = append([]models.FaqQuestion(nil), c.Questions...)
	s.mutate(func(d *models.AllData) bool {
		d.Faq = append(d.Faq, c)
		return true
	})
}

func (s *Store) UpdateFaqCategory(c models.FaqCategory) {
	c.Questions = append([]models.FaqQuestion(nil), c.Questions...)
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.Faq, c.ID, faqID, c)
	})
}

func (s *Store) DeleteFaqCategory(id string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.Faq, removed = removeByID(d.Faq, id, faqID)
		return removed
	})
}

// Page settings are keyed by path

func (s *Store) PageSettings() []models.PageSettings {
	return s.Snapshot().PageSettings
}

// PageByPath returns the entry whose path equals path exactly
func (s *Store) PageByPath(path string) (models.PageSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.data.PageSettings, path, pagePath)
}

// PageSEO returns the overrides for path, or the generic default when none match
func (s *Store) PageSEO(path string) models.PageSettings {
	if p, ok := s.PageByPath(path); ok {
		return p
	}
	seo := DefaultPageSEO
	seo.Path = path
	return seo
}

func (s *Store) AddPageSettings(p models.PageSettings) {
	s.mutate(func(d *models.AllData) bool {
		d.PageSettings = append(d.PageSettings, p)
		return true
	})
}

func (s *Store) UpdatePageSettings(p models.PageSettings) {
	s.mutate(func(d *models.AllData) bool {
		return replaceByID(d.PageSettings, p.Path, pagePath, p)
	})
}

func (s *Store) DeletePageSettings(path string) {
	s.mutate(func(d *models.AllData) bool {
		var removed bool
		d.PageSettings, removed = removeByID(d.PageSettings, path, pagePath)
		return removed
	})
}

// Singletons are replaced in full

func (s *Store) HomeContent() (models.HomePageContent, bool) {
	d := s.Snapshot()
	if d.HomeContent == nil {
		return models.HomePageContent{}, false
	}
	return *d.HomeContent, true
}

func (s *Store) SetHomeContent(c models.HomePageContent) {
	c = models.Clone(c)
	s.mutate(func(d *models.AllData) bool {
		d.HomeContent = &c
		return true
	})
}

func (s *Store) ProjectFilters() (models.ProjectFilters, bool) {
	d := s.Snapshot()
	if d.ProjectFilters == nil {
		return models.ProjectFilters{}, false
	}
	return *d.ProjectFilters, true
}

func (s *Store) SetProjectFilters(f models.ProjectFilters) {
	f = models.Clone(f)
	s.mutate(func(d *models.AllData) bool {
		d.ProjectFilters = &f
		return true
	})
}

func (s *Store) SiteSettings() (models.SiteSettings, bool) {
	d := s.Snapshot()
	if d.SiteSettings == nil {
		return models.SiteSettings{}, false
	}
	return *d.SiteSettings, true
}

func (s *Store) SetSiteSettings(st models.SiteSettings) {
	s.mutate(func(d *models.AllData) bool {
		d.SiteSettings = &st
		return true
	})
}
