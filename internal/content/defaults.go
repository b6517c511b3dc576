package content

import "residence/server/internal/models"

// PlaceholderImage is used for new projects until real photos are uploaded
const PlaceholderImage = "/images/placeholder.jpg"

// DefaultPageSEO is returned for paths without their own settings
var DefaultPageSEO = models.PageSettings{
	Title:       "Жилые комплексы от застройщика",
	Description: "Квартиры в новостройках от застройщика: планировки, цены, акции и ипотека.",
	H1:          "Квартиры от застройщика",
}

func intPtr(v int) *int { return &v }

// Defaults returns the built-in content used on first run and after a reset.
// Every call returns fresh slices.
func Defaults() models.AllData {
	return models.AllData{
		Projects: []models.Project{
			{
				ID:               "project-severny",
				Slug:             "severny",
				Name:             "ЖК «Северный»",
				ShortDescription: "Комфорт-класс рядом с парком",
				FullDescription:  "Монолитный дом с закрытым двором, подземным паркингом и собственной детской площадкой.",
				Location:         "ул. Северная, 12",
				Tags:             []string{"Комфорт", "Сдача в 2026"},
				HeroImage:        "/images/severny/hero.jpg",
				Gallery:          []string{"/images/severny/1.jpg", "/images/severny/2.jpg"},
				ColorTheme:       "blue",
				TotalFloors:      models.DefaultTotalFloors,
				Features: []models.Feature{
					{Title: "Закрытый двор", Description: "Двор без машин с зонами отдыха", Icon: "shield"},
					{Title: "Паркинг", Description: "Подземный паркинг на 120 мест", Icon: "car"},
				},
				Plans: []models.ApartmentPlan{
					{ID: "sev-plan-1", Rooms: 0, Area: 26.4, Price: "от 3 900 000 ₽", Image: "/images/severny/plan-studio.png", Floor: intPtr(3), Number: "12", Status: models.PlanAvailable},
					{ID: "sev-plan-2", Rooms: 1, Area: 38.2, Price: "от 5 200 000 ₽", Image: "/images/severny/plan-1.png", Floor: intPtr(7), Number: "45", Status: models.PlanReserved},
					{ID: "sev-plan-3", Rooms: 2, Area: 56.9, Price: "от 7 400 000 ₽", Image: "/images/severny/plan-2.png", Floor: intPtr(12), Number: "88", Status: models.PlanSold},
				},
				Promos: []models.PromoOffer{
					{ID: "sev-promo-1", Title: "Скидка на студии", Description: "При 100% оплате", Image: "/images/promo/studio.jpg", Discount: "-10%"},
				},
				Infrastructure: []models.InfrastructureItem{
					{ID: "sev-infra-1", Type: models.InfraSchool, Name: "Школа №5", X: 24.5, Y: 61},
					{ID: "sev-infra-2", Type: models.InfraShop, Name: "Супермаркет", X: 70, Y: 35.2},
				},
				Timeline: []models.TimelineItem{
					{ID: "sev-tl-1", Date: "2024-04-01", Title: "Начало строительства"},
					{ID: "sev-tl-2", Date: "2026-12-01", Title: "Ввод в эксплуатацию", Description: "Плановый срок сдачи"},
				},
			},
			{
				ID:               "project-rechnoy",
				Slug:             "rechnoy",
				Name:             "ЖК «Речной»",
				ShortDescription: "Видовые квартиры у набережной",
				FullDescription:  "Дом на первой линии у реки с панорамным остеклением и террасами.",
				Location:         "Набережная, 3",
				Tags:             []string{"Бизнес", "Сданный дом"},
				HeroImage:        "/images/rechnoy/hero.jpg",
				Gallery:          []string{"/images/rechnoy/1.jpg"},
				ColorTheme:       "green",
				TotalFloors:      16,
				Features: []models.Feature{
					{Title: "Набережная", Description: "Выход к реке", Icon: "waves"},
				},
				Plans: []models.ApartmentPlan{
					{ID: "rech-plan-1", Rooms: 3, Area: 84.3, Price: "по запросу", Image: "/images/rechnoy/plan-3.png", Floor: intPtr(15), Number: "61"},
				},
				Promos: []models.PromoOffer{
					{ID: "rech-promo-1", Title: "Кладовая в подарок", Description: "При покупке трёхкомнатной квартиры", Image: "/images/promo/storage.jpg", Discount: "Подарок"},
				},
				Infrastructure: []models.InfrastructureItem{
					{ID: "rech-infra-1", Type: models.InfraKindergarten, Name: "Детский сад «Солнышко»", X: 40, Y: 52},
				},
				Timeline: []models.TimelineItem{
					{ID: "rech-tl-1", Date: "2023-09-15", Title: "Дом сдан"},
				},
				CardPrice: "от 11 млн ₽",
			},
		},
		News: []models.NewsItem{
			{
				ID:       "news-1",
				Slug:     "start-prodazh-severny",
				Title:    "Старт продаж в ЖК «Северный»",
				Excerpt:  "Открыто бронирование квартир первой очереди.",
				Content:  "<p>Открыто бронирование квартир первой очереди. <strong>Спешите</strong>: количество квартир ограничено.</p>",
				Date:     "2024-05-20",
				Image:    "/images/news/severny-start.jpg",
				Category: "Новости компании",
			},
		},
		Faq: []models.FaqCategory{
			{
				ID:    "faq-buy",
				Title: "Покупка",
				Questions: []models.FaqQuestion{
					{ID: "faq-buy-1", Question: "Можно ли купить квартиру в ипотеку?", Answer: "Да, мы работаем с ведущими банками."},
					{ID: "faq-buy-2", Question: "Как забронировать квартиру?", Answer: "Оставьте заявку на сайте, менеджер свяжется с вами."},
				},
			},
		},
		Team: []models.TeamMember{
			{ID: "team-1", Name: "Анна Смирнова", Role: "Руководитель отдела продаж", Image: "/images/team/anna.jpg"},
		},
		Vacancies: []models.Vacancy{
			{ID: "vac-1", Title: "Менеджер по продажам", Department: "Продажи", Location: "Офис продаж", Type: "Полная занятость", Salary: "от 80 000 ₽"},
		},
		PageSettings: []models.PageSettings{
			{Path: "/", Title: "Квартиры от застройщика", Description: "Новостройки с отделкой и без.", H1: "Жилые комплексы"},
			{Path: "/buy/ipoteka", Title: "Ипотека", Description: "Ипотечные программы партнёров.", H1: "Ипотека"},
		},
		HomeContent: &models.HomePageContent{
			HeroTitle:    "Дом, в котором хочется жить",
			HeroSubtitle: "Квартиры в новостройках от застройщика",
			HeroImage:    "/images/home/hero.jpg",
			Advantages: []models.Advantage{
				{Title: "Собственное строительство", Description: "Без подрядчиков-посредников", Icon: "crane"},
				{Title: "Сдаём в срок", Description: "Все дома введены вовремя", Icon: "calendar"},
			},
			FeaturedProjects: []string{"project-severny", "project-rechnoy"},
		},
		ProjectFilters: &models.ProjectFilters{
			Locations:   []string{"ул. Северная, 12", "Набережная, 3"},
			Rooms:       []models.FreeText{"0", "1", "2", "3"},
			PriceRanges: []string{"до 5 млн", "5–10 млн", "от 10 млн"},
		},
		SiteSettings: &models.SiteSettings{
			Phone:       "+7 (800) 000-00-00",
			Email:       "sales@example.ru",
			Address:     "ул. Центральная, 1, офис продаж",
			CompanyName: "Застройщик",
			Logo:        "/images/logo.svg",
			Favicon:     "/favicon.ico",
		},
	}
}
