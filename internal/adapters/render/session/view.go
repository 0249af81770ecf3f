package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/collab-cli/internal/application"
	"github.com/bnema/collab-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

// RenderStatus draws the single-session view shown after a refresh.
func RenderStatus(result application.RefreshResult, opts RenderOptions) (string, error) {
	return runRender(func(s styles) string {
		return statusView(result, opts, s)
	})
}

// RenderList draws one row per mirrored session.
func RenderList(summaries []application.SessionSummary, opts RenderOptions) (string, error) {
	return runRender(func(s styles) string {
		return listView(summaries, opts, s)
	})
}

// RenderLog draws a session's full activity history, oldest first.
func RenderLog(session *domain.Session, opts RenderOptions) (string, error) {
	return runRender(func(s styles) string {
		return logView(session, opts, s)
	})
}

func statusView(result application.RefreshResult, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Session %s", result.SessionID.Token())),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.pulse(result.Pulse).Render(string(result.Pulse)),
			"  ",
			s.detail.Render(result.State),
		),
	}

	if result.Session != nil && result.Session.Task != "" {
		lines = append(lines, s.meta.Render(fmt.Sprintf("task: %s", truncate(result.Session.Task, 72))))
	}
	if result.LastActivity != "" {
		lines = append(lines, s.detail.Render(fmt.Sprintf("last activity: %s", result.LastActivity)))
	}
	if result.Session != nil && !result.Session.UpdatedAt.IsZero() {
		lines = append(lines, s.meta.Render(fmt.Sprintf("updated %s", relativeTime(result.Session.UpdatedAt, opts.Now))))
	}

	if result.PullRequest != nil {
		pr := s.link.Render(result.PullRequest.URL)
		if result.PullRequest.Title != "" {
			pr = lipgloss.JoinHorizontal(lipgloss.Top, pr, " ", s.meta.Render(result.PullRequest.Title))
		}
		lines = append(lines, s.detail.Render("pull request: ")+pr)
	} else if result.HasUnsubmittedSolution {
		lines = append(lines, s.detail.Render("a solution patch is ready but has not been submitted"))
	}

	if result.Warning != "" {
		lines = append(lines, s.warning.Render(result.Warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func listView(summaries []application.SessionSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Mirrored Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No sessions mirrored yet. Run `collab status <session>` to add one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		lines = append(lines, s.section.Render(summaryRow(summary, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryRow(summary application.SessionSummary, opts RenderOptions, s styles) string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.session.Render(summary.ID.Token()),
		"  ",
		s.pulse(summary.Pulse).Render(string(summary.Pulse)),
	)

	detail := s.detail.Render(truncate(summary.Task, 72))
	meta := s.meta.Render(fmt.Sprintf(
		"%d activities, updated %s",
		summary.Activities,
		relativeTime(summary.UpdatedAt, opts.Now),
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, detail, meta)
}

func logView(session *domain.Session, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Session %s", session.ID.Token())),
		s.header.Render(fmt.Sprintf("activities: %d", len(session.Log))),
	}

	if len(session.Log) == 0 {
		lines = append(lines, s.empty.Render("No activity recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, activity := range session.Log {
		lines = append(lines, activityRow(activity, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func activityRow(activity domain.Activity, s styles) string {
	core := activity.Core()

	stamp := "--:--"
	if !core.Timestamp.IsZero() {
		stamp = core.Timestamp.Local().Format("Jan 02 15:04")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.meta.Render(stamp),
		"  ",
		s.originator.Render(fmt.Sprintf("%-6s", core.Originator)),
		"  ",
		s.detail.Render(activity.Summarize()),
	)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func relativeTime(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		now = time.Now()
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	}
}
