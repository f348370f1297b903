package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/iliyamo/villa-booking/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type templateData struct {
	VillaName string
	Booking   model.BookingEmail
}

// Render builds the subject and HTML body of a booking email of the given
// kind (model.EmailGuest or model.EmailAdmin).
func Render(kind, villaName string, b model.BookingEmail) (subject, html string, err error) {
	var name string
	switch kind {
	case model.EmailGuest:
		name = "guest.html"
		subject = fmt.Sprintf("Booking Confirmation - %s", b.BookingReference)
	case model.EmailAdmin:
		name = "admin.html"
		subject = fmt.Sprintf("New Booking: %s", b.BookingReference)
	default:
		return "", "", fmt.Errorf("mailer: unknown email kind %q", kind)
	}
	if villaName != "" {
		subject += " | " + villaName
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, templateData{VillaName: villaName, Booking: b}); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
