package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/config"
	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/dataset"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and dataset for problems",
		Long: `Check that the dataset loads and look for data the dashboard cannot use well.

The doctor command reports:
- Dataset summary (source, rows, hire years)
- Checks grouped by category (Configuration, Dataset, Data Quality)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  hrdash doctor

  # Output as JSON
  hrdash doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         DatasetSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// DatasetSummary describes what was loaded.
type DatasetSummary struct {
	Source     string `json:"source"`
	ConfigFile string `json:"config_file,omitempty"`
	Rows       int    `json:"rows"`
	FirstHire  int    `json:"first_hire_year,omitempty"`
	LastHire   int    `json:"last_hire_year,omitempty"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

const (
	groupConfiguration = "configuration"
	groupDataset       = "dataset"
	groupQuality       = "data quality"
)

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		mode, err := output.ParseMode(opts.Format)
		if err != nil {
			return err
		}
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	}

	doctorOutput := diagnose(cmd, cc)

	// Render based on mode
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func diagnose(cmd *cobra.Command, cc *CommandContext) *DoctorOutput {
	cfg := cc.Cfg
	summary := DatasetSummary{Source: cfg.Dataset.Type, ConfigFile: config.GetConfigFileUsed()}
	if src, err := dataset.New(cfg.Dataset, cc.Logger); err == nil {
		summary.Source = src.Describe()
	}

	checks := configChecks(cfg)

	raw, err := dataset.Load(cmd.Context(), cfg.Dataset, cc.Logger)
	loadCheck := HealthCheck{RuleID: "DS01", Name: "Dataset loads", Group: groupDataset, Status: "pass"}
	if err != nil {
		loadCheck.Status = "error"
		loadCheck.IssueCount = 1
		loadCheck.Details = []string{err.Error()}
		checks = append(checks, loadCheck)
	} else {
		checks = append(checks, loadCheck)
		checks = append(checks, dataChecks(raw)...)
		summary.Rows = raw.Len()
		raw.Each(func(e core.Employee) {
			y := e.HireDate.Year()
			if summary.FirstHire == 0 || y < summary.FirstHire {
				summary.FirstHire = y
			}
			summary.LastHire = max(summary.LastHire, y)
		})
	}

	// Sort health checks by group then by rule ID
	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return groupOrder(checks[i].Group) < groupOrder(checks[j].Group)
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks, summary.Rows),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

func groupOrder(group string) int {
	switch group {
	case groupConfiguration:
		return 0
	case groupDataset:
		return 1
	default:
		return 2
	}
}

func newCheck(id, name, group string, details []string) HealthCheck {
	status := "pass"
	if len(details) > 0 {
		status = "warn"
	}
	return HealthCheck{RuleID: id, Name: name, Group: group, Status: status, IssueCount: len(details), Details: details}
}

func configChecks(cfg *config.Config) []HealthCheck {
	var noFile []string
	if config.GetConfigFileUsed() == "" {
		noFile = append(noFile, "no hrdash.yaml found; using defaults and environment")
	}
	var secret []string
	if cfg.UI.SessionSecret == config.DefaultSessionSecret {
		secret = append(secret, "ui.session_secret is the built-in development secret")
	}
	return []HealthCheck{
		newCheck("CF01", "Config file present", groupConfiguration, noFile),
		newCheck("CF02", "Session secret set", groupConfiguration, secret),
	}
}

func dataChecks(t *core.Table) []HealthCheck {
	var empty []string
	if t.Len() == 0 {
		empty = append(empty, "the dataset has no employees")
	}

	var noSalary, hireAfterTerm, birthAfterHire []string
	blanks := make(map[core.Dimension]int)
	dims := []core.Dimension{
		core.DimSex, core.DimRace, core.DimCitizenship, core.DimState,
		core.DimEmploymentStatus, core.DimRecruitmentSource,
	}

	t.Each(func(e core.Employee) {
		if !e.HasSalary {
			noSalary = append(noSalary, e.Name)
		}
		if e.Terminated() && e.TerminationDate.Before(e.HireDate) {
			hireAfterTerm = append(hireAfterTerm, e.Name)
		}
		if !e.BirthDate.Before(e.HireDate) {
			birthAfterHire = append(birthAfterHire, e.Name)
		}
		for _, d := range dims {
			if strings.TrimSpace(d.Value(e)) == "" {
				blanks[d]++
			}
		}
	})

	var blankDetails []string
	for _, d := range dims {
		if n := blanks[d]; n > 0 {
			blankDetails = append(blankDetails, fmt.Sprintf("%d employees with blank %s", n, d.Label()))
		}
	}

	return []HealthCheck{
		newCheck("DS02", "Employees present", groupDataset, empty),
		newCheck("DQ01", "Salaries present", groupQuality, noSalary),
		newCheck("DQ02", "Group values present", groupQuality, blankDetails),
		newCheck("DQ03", "Hired before terminated", groupQuality, hireAfterTerm),
		newCheck("DQ04", "Born before hired", groupQuality, birthAfterHire),
	}
}

// calculateHealthScore computes a health score from 0-100.
// The scoring weights:
// - Each issue reduces points
// - Larger datasets make each row-level issue count for less
// - Errors count double
func calculateHealthScore(checks []HealthCheck, rows int) int {
	if len(checks) == 0 {
		return 100
	}

	// Base score starts at 100
	score := 100.0

	basePenalty := 5.0
	if rows > 10 {
		basePenalty = 3.0
	}
	if rows > 50 {
		basePenalty = 2.0
	}
	if rows > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	return int(max(0, min(score, 100)))
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "CF01":
		return "Run 'hrdash init' to record the dataset location in hrdash.yaml"
	case "CF02":
		return "Set ui.session_secret or HRDASH_UI_SESSION_SECRET before sharing the web dashboard"
	case "DS01":
		return "Fix dataset.path (or dataset.dsn and dataset.table) so the employee table can be read"
	case "DS02":
		return "Point the dataset at an export that contains employee rows"
	case "DQ01":
		return "Fill in missing salaries; they are left out of salary charts and averages"
	case "DQ02":
		return "Fill in blank values; they are grouped as (blank) in charts"
	case "DQ03", "DQ04":
		return "Correct the dates of the listed employees in the source data"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header.Render("hrdash Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Dataset Summary
	r.Println(styles.Bold.Render("Dataset Summary"))
	r.Printf("   Source: %s\n", out.Summary.Source)
	r.Printf("   Employees: %d | Hired: %d-%d\n", out.Summary.Rows, out.Summary.FirstHire, out.Summary.LastHire)
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Bold.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Bold.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# hrdash Health Report")
	r.Println("")

	// Dataset Summary
	r.Println("## Dataset Summary")
	r.Println("")
	r.Printf("- **Source**: %s\n", out.Summary.Source)
	if out.Summary.ConfigFile != "" {
		r.Printf("- **Config**: %s\n", out.Summary.ConfigFile)
	}
	r.Printf("- **Employees**: %d\n", out.Summary.Rows)
	if out.Summary.Rows > 0 {
		r.Printf("- **Hire Years**: %d-%d\n", out.Summary.FirstHire, out.Summary.LastHire)
	}
	r.Println("")

	// Health Checks
	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Health Score
	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
