// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/advisor-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecommendation outputs a human-readable summary of a recommendation.
func (p *Printer) PrintRecommendation(reco *types.Recommendation) {
	if reco == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendation: #%d\n", reco.ID))
	if !reco.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Created:        %s\n", reco.CreatedAt.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\n")

	if len(reco.Courses) > 0 {
		sb.WriteString("Recommended Courses:\n")
		count := min(len(reco.Courses), maxItemsToShow)
		for i := 0; i < count; i++ {
			course := reco.Courses[i]
			title := course.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s (%.0f%%)\n", title, course.Match))
		}
		if len(reco.Courses) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reco.Courses)-maxItemsToShow))
		}
	}

	p.printBox("COURSE RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScholarships outputs the scholarship matches with scores.
func (p *Printer) PrintScholarships(scholarships []types.Scholarship) {
	if len(scholarships) == 0 {
		p.printBox("SCHOLARSHIP MATCHES", "No scholarship matches found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matches:\n\n", len(scholarships)))

	count := min(len(scholarships), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := scholarships[i]
		title := s.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Match: %.0f%%\n", s.Match))
		if s.Link != "" {
			link := s.Link
			if len(link) > 44 {
				link = link[:41] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", link))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scholarships) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(scholarships)-maxItemsToShow))
	}

	p.printBox("SCHOLARSHIP MATCHES", sb.String())
}

// PrintSummaries outputs the saved summaries list.
func (p *Printer) PrintSummaries(summaries []types.Summary) {
	if len(summaries) == 0 {
		p.printBox("SAVED SUMMARIES", "No saved summaries.")
		return
	}

	var sb strings.Builder
	for i, s := range summaries {
		sb.WriteString(fmt.Sprintf("#%d", s.ID))
		if s.RecommendationID != 0 {
			sb.WriteString(fmt.Sprintf("  (recommendation %d)", s.RecommendationID))
		}
		if s.IncludeScholarships {
			sb.WriteString("  +scholarships")
		}
		sb.WriteString("\n")
		if !s.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("    saved %s\n", s.CreatedAt.Format("2006-01-02 15:04")))
		}
		if i < len(summaries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SAVED SUMMARIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTranscripts outputs the uploaded transcripts list.
func (p *Printer) PrintTranscripts(transcripts []types.Transcript) {
	if len(transcripts) == 0 {
		p.printBox("UPLOADED TRANSCRIPTS", "No transcripts uploaded.")
		return
	}

	var sb strings.Builder
	for i, tr := range transcripts {
		path := tr.FilePath
		if len(path) > 44 {
			path = "..." + path[len(path)-41:]
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", tr.ID, path))
		if !tr.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("    uploaded %s\n", tr.CreatedAt.Format("2006-01-02 15:04")))
		}
		if i < len(transcripts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("UPLOADED TRANSCRIPTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummaryText outputs generated summary text before saving.
func (p *Printer) PrintSummaryText(text string) {
	if text == "" {
		return
	}
	p.printBox("GENERATED SUMMARY", text)
}
