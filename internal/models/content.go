package models

// NewsItem is a news article. Content is raw HTML rendered unescaped,
// so only trusted admin operators may write it.
type NewsItem struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

type FaqCategory struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Questions []FaqQuestion `json:"questions"`
}

type FaqQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type Vacancy struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Salary     string `json:"salary"`
}

// PageSettings holds SEO overrides for one route path, matched exactly
type PageSettings struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	H1          string `json:"h1"`
}

type Advantage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type HomePageContent struct {
	HeroTitle        string      `json:"heroTitle"`
	HeroSubtitle     string      `json:"heroSubtitle"`
	HeroImage        string      `json:"heroImage"`
	Advantages       []Advantage `json:"advantages"`
	FeaturedProjects []string    `json:"featuredProjects"`
	Extra            Extra       `json:"-"`
}

// ProjectFilters configures the catalogue filter controls. Room options
// are labels the site renders as given, such as 0, "1" or "studio".
type ProjectFilters struct {
	Locations   []string   `json:"locations"`
	Rooms       []FreeText `json:"rooms"`
	PriceRanges []string   `json:"priceRanges"`
	Extra       Extra      `json:"-"`
}

type SiteSettings struct {
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CompanyName string `json:"companyName"`
	Logo        string `json:"logo"`
	Favicon     string `json:"favicon"`
	Extra       Extra  `json:"-"`
}

// AllData is the whole site content, saved and loaded as one document
type AllData struct {
	Projects       []Project        `json:"projects"`
	News           []NewsItem       `json:"news"`
	Faq            []FaqCategory    `json:"faq"`
	Team           []TeamMember     `json:"team"`
	Vacancies      []Vacancy        `json:"vacancies"`
	PageSettings   []PageSettings   `json:"pageSettings"`
	HomeContent    *HomePageContent `json:"homeContent,omitempty"`
	ProjectFilters *ProjectFilters  `json:"projectFilters,omitempty"`
	SiteSettings   *SiteSettings    `json:"siteSettings,omitempty"`
	Extra          Extra            `json:"-"`
}

// Clone returns a deep copy of d
func (d AllData) Clone() AllData {
	return Clone(d)
}
