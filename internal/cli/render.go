package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/insight"
)

// Layout constants for styled output.
const (
	defaultBoxWidth     = 72
	minBoxWidth         = 44
	boxPaddingWidth     = 4
	narrowTerminalWidth = 56
	layoutWidthPercent  = 0.8
	scoreBarWidth       = 30
	maxScore            = 100
	tabPadding          = 2
)

// boxBorderColor returns the lipgloss.Color used for box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the lipgloss.Color used for box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

// ratingColor returns the color of a circularity rating.
func ratingColor(r insight.Rating) lipgloss.Color {
	switch r {
	case insight.RatingExcellent:
		return lipgloss.Color("42")
	case insight.RatingGood:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("214")
	}
}

// metricRow is one line of the primary/comparison table.
type metricRow struct {
	label      string
	unit       string
	primary    int64
	comparison int64
}

func metricRows(r impact.ImpactReport) []metricRow {
	return []metricRow{
		{"Carbon footprint", "kg CO2e", r.Primary.CO2e, r.Comparison.CO2e},
		{"Energy", "MJ", r.Primary.Energy, r.Comparison.Energy},
		{"Water", "L", r.Primary.Water, r.Comparison.Water},
		{"Resource depletion", "kg Sb eq", r.Primary.Depletion, r.Comparison.Depletion},
		{"Waste", "kg", r.Primary.Waste, r.Comparison.Waste},
	}
}

// sourceLabel describes the primary pathway.
func sourceLabel(r impact.ImpactReport) string {
	if r.SourceMode == impact.SourceScrap && r.PriorUse != "" {
		return fmt.Sprintf("scrap (%s)", r.PriorUse)
	}
	return string(r.SourceMode)
}

// renderAssessment writes one assessment as a styled box on a terminal or
// as plain aligned text otherwise.
func renderAssessment(w io.Writer, a *engine.Assessment, styled bool) error {
	if styled {
		return renderStyledAssessment(w, a)
	}
	return renderPlainAssessment(w, a)
}

func renderPlainAssessment(w io.Writer, a *engine.Assessment) error {
	r := a.Report
	var sb strings.Builder

	fmt.Fprintf(&sb, "IMPACT ASSESSMENT: %s\n", a.Name)
	sb.WriteString(strings.Repeat("=", len("IMPACT ASSESSMENT: ")+len(a.Name)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Material:     %s\n", r.Material)
	fmt.Fprintf(&sb, "Source:       %s\n", sourceLabel(r))
	fmt.Fprintf(&sb, "Mass:         %s kg\n", greenops.FormatMass(r.Mass))
	fmt.Fprintf(&sb, "Recycled:     %.0f%% (comparison)\n", r.RecycledPercent)
	fmt.Fprintf(&sb, "Circularity:  %d/100 (%s)\n\n", r.CircularityScore, a.Rating)

	tw := tabwriter.NewWriter(&sb, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "METRIC\tPRIMARY\tCOMPARISON\t")
	for _, row := range metricRows(r) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.label,
			greenops.FormatQuantity(row.primary, row.unit),
			greenops.FormatQuantity(row.comparison, row.unit))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(&sb, "\nReductions:   CO2 %d%%  Energy %d%%  Water %d%%\n",
		r.Reductions.CO2, r.Reductions.Energy, r.Reductions.Water)
	if !a.Avoided.IsEmpty {
		fmt.Fprintf(&sb, "Avoided:      %s kg CO2e %s\n",
			greenops.FormatLarge(a.Avoided.InputKg), a.Avoided.CompactText)
	}

	sb.WriteString("\nRecommendations:\n")
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&sb, "  - %s: %s\n", rec.Title, rec.Description)
	}
	fmt.Fprintf(&sb, "\n%s\n", a.Summary)

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderStyledAssessment(w io.Writer, a *engine.Assessment) error {
	r := a.Report
	boxWidth := calculateBoxWidth(getTerminalWidth(w))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("IMPACT ASSESSMENT"))
	content.WriteString("  ")
	content.WriteString(labelStyle.Render(a.Name))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", boxWidth-boxPaddingWidth))
	content.WriteString("\n")

	fmt.Fprintf(&content, "%s %s    %s %s    %s %s kg\n",
		labelStyle.Render("Material"), r.Material,
		labelStyle.Render("Source"), sourceLabel(r),
		labelStyle.Render("Mass"), greenops.FormatMass(r.Mass))

	content.WriteString("\n")
	content.WriteString(renderScoreBar(r.CircularityScore, a.Rating))
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render(
		fmt.Sprintf("Primary vs %.0f%% recycled", r.RecycledPercent)))
	content.WriteString("\n")
	for _, row := range metricRows(r) {
		fmt.Fprintf(&content, "%-20s %18s %18s\n", row.label,
			greenops.FormatQuantity(row.primary, row.unit),
			greenops.FormatQuantity(row.comparison, row.unit))
	}

	content.WriteString("\n")
	fmt.Fprintf(&content, "%s CO2 %d%%  Energy %d%%  Water %d%%\n",
		labelStyle.Render("Reductions"), r.Reductions.CO2, r.Reductions.Energy, r.Reductions.Water)
	if !a.Avoided.IsEmpty {
		avoidedStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246"))
		content.WriteString(avoidedStyle.Render(a.Avoided.DisplayText))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(sectionStyle.Render("Recommendations"))
	content.WriteString("\n")
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&content, "• %s\n", lipgloss.NewStyle().Bold(true).Render(rec.Title))
		fmt.Fprintf(&content, "  %s\n", rec.Description)
	}

	_, err := fmt.Fprintln(w, borderStyle.Render(strings.TrimRight(content.String(), "\n")))
	return err
}

// renderScoreBar draws the circularity score as a bar colored by rating.
func renderScoreBar(score int, rating insight.Rating) string {
	filled := score * scoreBarWidth / maxScore
	filled = max(0, min(filled, scoreBarWidth))

	filledStyle := lipgloss.NewStyle().Foreground(ratingColor(rating))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	label := lipgloss.NewStyle().Bold(true).Foreground(ratingColor(rating)).
		Render(fmt.Sprintf("%d/100 %s", score, rating))

	return "Circularity " +
		filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", scoreBarWidth-filled)) +
		" " + label
}

// renderBatchTable writes one row per batch item.
func renderBatchTable(w io.Writer, res *engine.BatchResult, items []engine.BatchItem, styled bool) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMATERIAL\tSOURCE\tCO2E (KG)\tCO2 RED.\tSCORE\tRATING")
	for _, it := range items {
		if it.Assessment == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\tERROR: %s\n", it.Name, it.Error)
			continue
		}
		r := it.Assessment.Report
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%d\t%s\n",
			it.Name, r.MaterialKey, sourceLabel(r), greenops.FormatNumber(r.Primary.CO2e),
			r.Reductions.CO2, r.CircularityScore, it.Assessment.Rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	footer := fmt.Sprintf("%d succeeded, %d failed in %s", res.Succeeded, res.Failed, res.Duration.Round(time.Millisecond))
	if len(items) != len(res.Items) {
		footer = fmt.Sprintf("showing %d of %d; %s", len(items), len(res.Items), footer)
	}

	if !styled {
		_, err := fmt.Fprintf(w, "%s\n%s\n", strings.TrimRight(sb.String(), "\n"), footer)
		return err
	}

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor()).Render("BATCH ASSESSMENT")
	footerStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246"))
	body := title + "\n" + strings.TrimRight(sb.String(), "\n") + "\n" + footerStyle.Render(footer)
	_, err := fmt.Fprintln(w, borderStyle.Render(body))
	return err
}

// renderMaterialsTable writes the reference catalog.
func renderMaterialsTable(w io.Writer, c impact.Catalog, styled bool) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tVIRGIN CO2E/KG\tSCRAP CO2E/KG\tMELT REF °C\tEFFICIENCY %\tSEPARATION")
	for _, m := range c.Materials {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.0f\t%.0f\t%d\n",
			m.Key, m.Name, m.Virgin.CO2e, m.Scrap.CO2e,
			m.MeltingReferenceTemp, m.TypicalEfficiency, m.SeparationComplexity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	options := fmt.Sprintf("energy sources:  %s\ntransport modes: %s\nend of life:     %s\nprevious uses:   %s",
		joinKeys(c.EnergySources), joinKeys(c.TransportModes), joinKeys(c.EndOfLife), joinKeys(c.PriorUses))

	if !styled {
		_, err := fmt.Fprintf(w, "%s\n%s\n", sb.String(), options)
		return err
	}

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor()).Render("MATERIALS")
	_, err := fmt.Fprintln(w, borderStyle.Render(title+"\n"+sb.String()+"\n"+options))
	return err
}

func joinKeys[K ~string](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// getTerminalWidth returns the width of w when it is a terminal.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultBoxWidth + boxPaddingWidth
}

// calculateBoxWidth calculates the appropriate box width based on terminal width.
func calculateBoxWidth(termWidth int) int {
	if termWidth < narrowTerminalWidth {
		return minBoxWidth
	}
	boxWidth := int(float64(termWidth) * layoutWidthPercent)
	boxWidth = min(boxWidth, defaultBoxWidth)
	boxWidth = max(boxWidth, minBoxWidth)
	return boxWidth
}
