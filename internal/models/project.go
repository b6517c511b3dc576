package models

// PlanStatus is the sales status of an apartment plan
type PlanStatus string

const (
	PlanAvailable PlanStatus = "available"
	PlanReserved  PlanStatus = "reserved"
	PlanSold      PlanStatus = "sold"
)

// Valid reports whether s is one of the known statuses
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanAvailable, PlanReserved, PlanSold:
		return true
	}
	return false
}

// InfrastructureType is the kind of a pin placed over the neighbourhood image
type InfrastructureType string

const (
	InfraSchool       InfrastructureType = "school"
	InfraKindergarten InfrastructureType = "kindergarten"
	InfraShop         InfrastructureType = "shop"
	InfraPharmacy     InfrastructureType = "pharmacy"
	InfraGym          InfrastructureType = "gym"
	InfraDentist      InfrastructureType = "dentist"
)

// InfrastructureTypes lists the pin types in the order the editor offers them
var InfrastructureTypes = []InfrastructureType{
	InfraSchool, InfraKindergarten, InfraShop, InfraPharmacy, InfraGym, InfraDentist,
}

// Valid reports whether t is one of the known pin types
func (t InfrastructureType) Valid() bool {
	for _, known := range InfrastructureTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultTotalFloors is used for new projects
const DefaultTotalFloors = 19

// Project is a residential building project shown on the site
type Project struct {
	ID               string               `json:"id"`
	Slug             string               `json:"slug"`
	Name             string               `json:"name"`
	ShortDescription string               `json:"shortDescription"`
	FullDescription  string               `json:"fullDescription"`
	Location         string               `json:"location"`
	Tags             []string             `json:"tags"`
	HeroImage        string               `json:"heroImage"`
	Gallery          []string             `json:"gallery"`
	ColorTheme       string               `json:"colorTheme"`
	TotalFloors      int                  `json:"totalFloors"`
	Features         []Feature            `json:"features"`
	Plans            []ApartmentPlan      `json:"plans"`
	Promos           []PromoOffer         `json:"promos"`
	Infrastructure   []InfrastructureItem `json:"infrastructure"`
	Timeline         []TimelineItem       `json:"timeline"`
	CardPrice        string               `json:"cardPrice,omitempty"`
	CardPromo        string               `json:"cardPromo,omitempty"`
	Extra            Extra                `json:"-"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ApartmentPlan is one layout offered in a project. Price is display text only.
type ApartmentPlan struct {
	ID     string     `json:"id"`
	Rooms  int        `json:"rooms"`
	Area   float64    `json:"area"`
	Price  string     `json:"price"`
	Image  string     `json:"image"`
	Floor  *int       `json:"floor,omitempty"`
	Number string     `json:"number,omitempty"`
	Status PlanStatus `json:"status,omitempty"`
}

// EffectiveStatus treats a missing status as available
func (p ApartmentPlan) EffectiveStatus() PlanStatus {
	if p.Status == "" {
		return PlanAvailable
	}
	return p.Status
}

// IsStudio reports whether the plan has no separate rooms
func (p ApartmentPlan) IsStudio() bool {
	return p.Rooms == 0
}

type PromoOffer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Discount    string `json:"discount,omitempty"`
}

// InfrastructureItem is a pin over the project's neighbourhood image.
// X and Y are percentages of the image box, not geographic coordinates.
type InfrastructureItem struct {
	ID   string             `json:"id"`
	Type InfrastructureType `json:"type"`
	Name string             `json:"name"`
	X    float64            `json:"x"`
	Y    float64            `json:"y"`
}

// TimelineItem is a construction milestone. Date is YYYY-MM-DD.
type TimelineItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
