package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

const (
	defaultWidth = 100
	barWidth     = 30
)

var toneColors = map[model.Tone]lipgloss.Color{
	model.ToneDanger:  lipgloss.Color("9"),
	model.ToneInfo:    lipgloss.Color("12"),
	model.ToneSuccess: lipgloss.Color("10"),
	model.ToneNeutral: lipgloss.Color("11"),
}

// Renderer renders dashboard pages as terminal text
type Renderer struct {
	width   int
	noColor bool

	title     lipgloss.Style
	subtitle  lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	heading   lipgloss.Style
	faint     lipgloss.Style
}

// Option configures the renderer
type Option func(*Renderer)

// WithWidth sets the line width used for wrapping
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithNoColor disables the signed change colors
func WithNoColor() Option {
	return func(r *Renderer) {
		r.noColor = true
	}
}

// New creates a terminal renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth}
	for _, opt := range opts {
		opt(r)
	}

	r.title = lipgloss.NewStyle().Bold(true)
	r.subtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	r.tab = lipgloss.NewStyle().Padding(0, 1)
	r.activeTab = lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	r.card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(22)
	r.heading = lipgloss.NewStyle().Bold(true).Underline(true)
	r.faint = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return r
}

// Width returns the wrapping width
func (r *Renderer) Width() int {
	return r.width
}

// RenderPage implements interfaces.PageRenderer
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page *model.Page) error {
	if page == nil || page.Section == nil {
		return goerr.New("page has no section")
	}

	body, err := r.renderSection(page.Section)
	if err != nil {
		return err
	}

	return r.write(w, page, body)
}

// RenderNotFound implements interfaces.PageRenderer
func (r *Renderer) RenderNotFound(ctx context.Context, w io.Writer, page *model.Page, requested string) error {
	return r.write(w, page, fmt.Sprintf("No dashboard tab matches %q.", requested))
}

// Page renders a page into a string, for interactive views
func (r *Renderer) Page(page *model.Page) (string, error) {
	var sb strings.Builder
	if err := r.RenderPage(context.Background(), &sb, page); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) write(w io.Writer, page *model.Page, body string) error {
	var sb strings.Builder
	sb.WriteString(r.title.Render(page.Title) + "\n")
	sb.WriteString(r.subtitle.Render(page.Subtitle) + "\n\n")
	sb.WriteString(r.tabBar(page.Tabs) + "\n")
	if len(page.SubTabs) > 0 {
		sb.WriteString(r.tabBar(page.SubTabs) + "\n")
	}
	sb.WriteString("\n" + body + "\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return goerr.Wrap(err, "failed to write page")
	}
	return nil
}

func (r *Renderer) tabBar(items []model.NavItem) string {
	cells := make([]string, 0, len(items))
	for _, item := range items {
		if item.Active {
			cells = append(cells, r.activeTab.Render(item.Label))
		} else {
			cells = append(cells, r.tab.Render(item.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (r *Renderer) renderSection(section model.Section) (string, error) {
	switch v := section.(type) {
	case *model.OverviewSection:
		return r.overview(v), nil
	case *model.PredictionSection:
		return r.prediction(v), nil
	case *model.RadarSection:
		return r.radar(v), nil
	case *model.ArchitectureSection:
		return r.architecture(v), nil
	case *model.ArticleSection:
		return r.article(v), nil
	case *model.GallerySection:
		return r.gallery(v), nil
	}
	return "", goerr.New("unsupported section", goerr.V("kind", section.Kind()))
}

func (r *Renderer) overview(s *model.OverviewSection) string {
	cards := make([]string, 0, len(s.Overview.Cards))
	for _, c := range s.Overview.Cards {
		value := lipgloss.NewStyle().Bold(true).Foreground(toneColors[c.Tone]).Render(c.Value)
		cards = append(cards, r.card.Render(c.Title+"\n"+value+"\n"+r.faint.Render(c.Caption)))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	sb.WriteString(r.heading.Render("Disease Pattern Analysis") + "\n")

	maxCases := 0
	for _, c := range s.Overview.Cases {
		maxCases = max(maxCases, c.Cases)
	}

	var previous *model.MonthlyCase
	for i := range s.Overview.Cases {
		c := &s.Overview.Cases[i]
		change := ""
		if previous != nil {
			change = r.signed(model.MonthlyChange(c, previous))
		}
		fmt.Fprintf(&sb, "%-4s %6d %-*s %s\n", c.Month, c.Cases, barWidth, bar(c.Cases, maxCases), change)
		previous = c
	}
	return strings.TrimRight(sb.String(), "\n")
}

// signed colors a change like the overview card: increases are red
func (r *Renderer) signed(change float64) string {
	text := model.FormatPercent(change)
	if change > 0 {
		text = "+" + text
	}

	c := color.New(color.FgGreen)
	if model.ChangeTone(change) == model.ToneDanger {
		c = color.New(color.FgRed)
	}
	if r.noColor {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func (r *Renderer) prediction(s *model.PredictionSection) string {
	cards := make([]string, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		accuracy := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.Color)).Render(m.Accuracy)
		cards = append(cards, r.card.Width(26).Render(
			m.Name+"\n"+accuracy+" accuracy\n"+
				r.faint.Render("MSE  "+m.MSE)+"\n"+
				r.faint.Render("RMSE "+m.RMSE)))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	sb.WriteString(r.heading.Render("Model Predictions Comparison") + "\n")

	fmt.Fprintf(&sb, "%-6s %8s", "Month", "Actual")
	for _, m := range s.Metrics {
		fmt.Fprintf(&sb, " %10s", m.ShortName)
	}
	sb.WriteString("\n")

	for i := range s.Points {
		p := &s.Points[i]
		fmt.Fprintf(&sb, "%-6s %8d", p.Month, p.Actual)
		for _, m := range s.Metrics {
			fmt.Fprintf(&sb, " %10s", strconv.FormatFloat(p.Value(m.ID), 'f', 0, 64))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) radar(s *model.RadarSection) string {
	var sb strings.Builder
	sb.WriteString(r.heading.Render("Model Performance Comparison") + "\n")

	for i := range s.Scores {
		score := &s.Scores[i]
		sb.WriteString(score.Criterion + "\n")
		for _, m := range s.Metrics {
			v := score.Score(m.ID)
			label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render(fmt.Sprintf("  %-16s", m.Family))
			fmt.Fprintf(&sb, "%s %3d %s\n", label, v, bar(v, 100))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) architecture(s *model.ArchitectureSection) string {
	panels := make([]string, 0, len(s.Architectures))
	for _, a := range s.Architectures {
		lines := []string{lipgloss.NewStyle().Bold(true).Render(a.Title)}
		for _, d := range a.Details {
			lines = append(lines, r.faint.Render(d.Label+": ")+d.Value)
		}
		panels = append(panels, r.card.Width(32).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (r *Renderer) article(s *model.ArticleSection) string {
	var sb strings.Builder
	sb.WriteString(r.heading.Render(s.Article.Title) + "\n\n")
	for _, p := range s.Article.Items {
		r.paragraph(&sb, p, 0, "")
		sb.WriteString("\n")
	}

	if len(s.Documents) > 0 {
		sb.WriteString(r.heading.Render("Download Presentation Documents") + "\n")
		for _, d := range s.Documents {
			sb.WriteString("- " + d.Title + "\n  " + r.faint.Render(d.Path) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) paragraph(sb *strings.Builder, p model.Paragraph, depth int, marker string) {
	indent := strings.Repeat("  ", depth)

	var parts []string
	if p.Heading != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(p.Heading))
	}
	if p.Text != "" {
		text := p.Text
		if p.Emphasis {
			text = lipgloss.NewStyle().Italic(true).Render(text)
		}
		parts = append(parts, text)
	}

	if len(parts) > 0 {
		wrapped := lipgloss.NewStyle().Width(max(r.width-len(indent)-len(marker), 20)).Render(strings.Join(parts, " "))
		for i, line := range strings.Split(wrapped, "\n") {
			prefix := strings.Repeat(" ", len(marker))
			if i == 0 {
				prefix = marker
			}
			sb.WriteString(indent + prefix + strings.TrimRight(line, " ") + "\n")
		}
	}

	for i, child := range p.Items {
		m := "- "
		if p.Ordered {
			m = strconv.Itoa(i+1) + ". "
		}
		r.paragraph(sb, child, depth+1, m)
	}
}

func (r *Renderer) gallery(s *model.GallerySection) string {
	var sb strings.Builder
	sb.WriteString(r.heading.Render("Gallery") + "\n")
	for i, img := range s.Images {
		fmt.Fprintf(&sb, "%d. %s", i+1, img.Path)
		if img.Caption != "" {
			sb.WriteString("  " + r.faint.Render(img.Caption))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// bar draws a horizontal bar of v relative to total
func bar(v, total int) string {
	if total <= 0 || v <= 0 {
		return ""
	}
	n := v * barWidth / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
