package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/tobgu/qframe"

	"house-prices/models"
	"house-prices/services"
	"house-prices/utils"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("%.0f", v) },
}).ParseFS(templateFS, "templates/page.html"))

const pageTitle = "Недвижимость - HousePrices"

// Dashboard is what the handlers need from the service layer.
type Dashboard interface {
	Filter(ctx context.Context, q models.Query) (qframe.QFrame, error)
	Run(ctx context.Context, q models.Query) (*models.Report, error)
}

// Handler serves the dashboard page and its assets.
type Handler struct {
	dash     Dashboard
	iconPath string
	logger   *utils.Logger
}

func NewHandler(dash Dashboard, iconPath string, logger *utils.Logger) *Handler {
	return &Handler{dash: dash, iconPath: iconPath, logger: logger}
}

// Routes returns the HTTP routes wrapped in request ID middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.index)
	mux.HandleFunc("/export.csv", h.export)
	mux.HandleFunc("/icon", h.icon)
	mux.HandleFunc("/healthz", h.healthz)
	return withRequestID(h.logger, mux)
}

type selectorView struct {
	services.Selector
	Selected string
}

type pageData struct {
	Title     string
	Condition services.Slider
	Year      services.Slider
	Selection services.Selection
	Query     models.Query
	Report    *models.Report
	MeanLine  string
	Chart     template.HTML
	ExportURL template.URL
	HasIcon   bool

	SelectorsBeforeYear []selectorView
	SelectorsAfterYear  []selectorView
}

// MeanLine formats the average price the way the page shows it.
func MeanLine(mean float64) string {
	return fmt.Sprintf("Средняя цена - %.2f$", mean)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	log := loggerFrom(r.Context(), h.logger)

	q, sel, err := services.ParseQuery(r.URL.Query())
	if err != nil {
		h.fail(w, log, err)
		return
	}

	report, err := h.dash.Run(r.Context(), q)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	data := pageData{
		Title:     pageTitle,
		Condition: services.ConditionSlider,
		Year:      services.YearSlider,
		Selection: sel,
		Query:     q,
		Report:    report,
		ExportURL: template.URL("/export.csv?" + sel.Values().Encode()),
		HasIcon:   h.hasIcon(),
		SelectorsBeforeYear: []selectorView{
			{services.UtilitiesSelector, sel.Utilities},
			{services.FoundationSelector, sel.Foundation},
		},
		SelectorsAfterYear: []selectorView{
			{services.ZoningSelector, sel.Zoning},
		},
	}

	if !report.Empty() {
		data.MeanLine = MeanLine(report.MeanPrice)
		svg, err := services.RenderHistogramSVG(report.Histogram)
		if err != nil {
			h.fail(w, log, err)
			return
		}
		data.Chart = template.HTML(svg)
	}

	log.Info("[web] query %+v matched %d rows", q, report.Count)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Error("[web] render page: %v", err)
	}
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.logger)

	q, _, err := services.ParseQuery(r.URL.Query())
	if err != nil {
		h.fail(w, log, err)
		return
	}

	result, err := h.dash.Filter(r.Context(), q)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="result.csv"`)
	if err := result.ToCSV(w); err != nil {
		log.Error("[web] write csv: %v", err)
	}
}

func (h *Handler) hasIcon() bool {
	info, err := os.Stat(h.iconPath)
	return err == nil && !info.IsDir()
}

func (h *Handler) icon(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.iconPath); err != nil {
		loggerFrom(r.Context(), h.logger).Warn("[web] icon %s unavailable: %v", h.iconPath, err)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.iconPath)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// fail maps invalid widget state to 400 and everything else, chiefly an
// unreadable dataset, to 500.
func (h *Handler) fail(w http.ResponseWriter, log *utils.Logger, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		log.Warn("[web] %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error("[web] %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
