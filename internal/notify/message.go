package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"residence/server/internal/models"
)

// leadLines renders the booking fields that were filled in, in a fixed order
func leadLines(b models.Booking) [][2]string {
	lines := [][2]string{
		{"Имя", b.Name},
		{"Телефон", b.Phone},
	}
	optional := []struct {
		label string
		value models.FreeText
	}{
		{"Проект", b.ProjectName},
		{"Комнат", b.Rooms},
		{"Площадь", b.Area},
		{"Этаж", b.Floor},
		{"Квартира №", b.Number},
		{"Цена", b.Price},
		{"ID планировки", b.ApartmentID},
	}
	for _, field := range optional {
		value := strings.TrimSpace(field.value.String())
		if value == "" {
			continue
		}
		switch field.label {
		case "Комнат":
			if value == "0" {
				value = "студия"
			}
		case "Площадь":
			value += " м²"
		}
		lines = append(lines, [2]string{field.label, value})
	}
	lines = append(lines, [2]string{"Время заявки", b.CreatedAt.In(time.Local).Format("02.01.2006 15:04")})
	return lines
}

func leadSubject(b models.Booking) string {
	if project := b.ProjectName.String(); project != "" {
		return fmt.Sprintf("Новая заявка: %s", project)
	}
	return "Новая заявка с сайта"
}

// leadHTML formats the booking as an HTML table, escaping submitted values
func leadHTML(b models.Booking) string {
	var sb strings.Builder
	sb.WriteString("<h2>Новая заявка на бронирование</h2><table>")
	for _, line := range leadLines(b) {
		fmt.Fprintf(&sb, "<tr><td><b>%s</b></td><td>%s</td></tr>", line[0], html.EscapeString(line[1]))
	}
	fmt.Fprintf(&sb, "</table><p>ID заявки: %s</p>", html.EscapeString(b.ID))
	return sb.String()
}
