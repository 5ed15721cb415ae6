package dashboard

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/internal/ui/features/common"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

const (
	dashboardID = "dashboard"
	flashID     = "flash"
)

// View is what one render of the dashboard element needs.
type View struct {
	Dashboard *pipeline.Dashboard
	Version   uint64
}

// Signals are the datastar signals the filter bar binds.
type Signals struct {
	Year   string `json:"year"`
	Status string `json:"status"`
	Source string `json:"source"`
}

func signalsFor(sel core.Selection) Signals {
	sel = sel.Normalize()
	return Signals{Year: sel.YearOfHire, Status: sel.EmploymentStatus, Source: sel.RecruitmentSource}
}

// Selection converts the signals to a normalized selection.
func (s Signals) Selection() core.Selection {
	return core.Selection{
		YearOfHire:        s.Year,
		EmploymentStatus:  s.Status,
		RecruitmentSource: s.Source,
	}.Normalize()
}

// Page is the full dashboard document.
func Page(v View) templ.Component {
	return common.Layout("Overview", "/updates", DashboardView(v))
}

// DashboardView is the patchable dashboard element: filters, metric cards
// and chart grid.
func DashboardView(v View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		d := v.Dashboard
		h := common.NewHTML(w)
		h.Raw("<div").Attr("id", dashboardID).JSONAttr("data-signals", signalsFor(d.Selection)).Raw(">")

		writeFilters(h, d.Options, d.Selection)
		h.Raw("<div").Attr("id", flashID).Raw("></div>")

		h.Raw(`<p class="status">Showing `).Text(render.Count(d.Matched)).
			Raw(" of ").Text(render.Count(d.Total)).Raw(" employees · ").
			Text(render.SelectionLine(d.Selection)).Raw("</p>")

		writeMetrics(h, d.Summary)
		writeCharts(h, d, v.Version)

		h.Raw("</div>")
		return h.Err()
	})
}

// Flash replaces the flash slot with an error message.
func Flash(msg string) templ.Component {
	return common.ErrorBox(flashID, msg)
}

func writeFilters(h *common.HTML, opts core.FilterOptions, sel core.Selection) {
	h.Raw(`<form class="filters" onsubmit="return false">`)
	writeSelect(h, keyYear, core.DimYearOfHire.Label(), opts.Years, sel.YearOfHire)
	writeSelect(h, keyStatus, core.DimEmploymentStatus.Label(), opts.Statuses, sel.EmploymentStatus)
	writeSelect(h, keySource, core.DimRecruitmentSource.Label(), opts.Sources, sel.RecruitmentSource)
	h.Raw("</form>")
}

func writeSelect(h *common.HTML, signal, label string, options []string, selected string) {
	h.Raw("<label>").Text(label).
		Raw("<select").Attr("name", signal).Attr("data-bind:"+signal, "").
		Attr("data-on:change", "@post('/api/filters')").Raw(">")
	for _, o := range options {
		h.Raw("<option").Attr("value", o)
		if o == selected {
			h.Raw(" selected")
		}
		h.Raw(">").Text(o).Raw("</option>")
	}
	h.Raw("</select></label>")
}

func writeMetrics(h *common.HTML, s core.Summary) {
	h.Raw(`<section class="metrics">`)
	for _, m := range s.Metrics() {
		value := m.Value
		if n, err := strconv.Atoi(value); err == nil {
			value = render.Count(n)
		}
		h.Raw(`<div class="metric-card"`).Attr("id", "metric-"+m.Key).Raw(">").
			Raw(`<div class="label">`).Text(m.Label).Raw("</div>").
			Raw(`<div class="value">`).Text(value).Raw("</div></div>")
	}
	h.Raw("</section>")
}

func writeCharts(h *common.HTML, d *pipeline.Dashboard, version uint64) {
	q := selectionQuery(d.Selection)
	q.Set("v", strconv.FormatUint(version, 10))
	query := q.Encode()

	h.Raw(`<section class="charts">`)
	for _, c := range d.Charts {
		h.Raw(`<figure class="chart"`).Attr("id", "chart-"+c.Name).Raw(">").
			Raw("<img").Attr("src", "/charts/"+c.Name+".svg?"+query).Attr("alt", c.Title).
			Raw(` loading="lazy"></figure>`)
	}
	h.Raw("</section>")
}
