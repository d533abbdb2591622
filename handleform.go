package main

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/windeesel365/slab-tax/display"
	"github.com/windeesel365/slab-tax/incomeinput"
	"github.com/windeesel365/slab-tax/taxcal"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"rupees":         display.Rupees,
		"directionLabel": display.DirectionLabel,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{templates: t}, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// formView is everything the page needs; Comparison nil hides the table.
type formView struct {
	Income     string
	Hint       string
	Comparison *taxcal.Comparison
}

func (h *Handler) HandleForm(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", formView{})
}

// HandleFormSubmit never fails on bad input: the page comes back with a hint
// and without the comparison section.
func (h *Handler) HandleFormSubmit(c echo.Context) error {
	view := formView{Income: c.FormValue("income")}

	income, err := incomeinput.Parse(view.Income)
	if err != nil {
		view.Hint = formHint(err)
		return c.Render(http.StatusOK, "index.html", view)
	}

	comparison, err := taxcal.CompareRegimes(income)
	if err != nil {
		view.Hint = formHint(err)
		return c.Render(http.StatusOK, "index.html", view)
	}

	h.record(c.Request().Context(), "form", comparison)
	view.Comparison = &comparison
	return c.Render(http.StatusOK, "index.html", view)
}

func formHint(err error) string {
	switch {
	case errors.Is(err, incomeinput.ErrNegative), errors.Is(err, taxcal.ErrNegativeIncome):
		return "Annual income cannot be negative."
	case errors.Is(err, incomeinput.ErrTooLong):
		return "That amount is too large for an annual income."
	default:
		return "Please enter your annual income as a number, e.g. 10,00,000."
	}
}
