package session

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/collab-cli/internal/domain"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	session    lipgloss.Style
	detail     lipgloss.Style
	meta       lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	link       lipgloss.Style
	originator lipgloss.Style

	pulseQueued    lipgloss.Style
	pulseActive    lipgloss.Style
	pulseAttention lipgloss.Style
	pulseDone      lipgloss.Style
	pulseFailed    lipgloss.Style
	pulseUnknown   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		session:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		link:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
		originator: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),

		pulseQueued:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		pulseActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		pulseAttention: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		pulseDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		pulseFailed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		pulseUnknown:   lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) pulse(pulse domain.Pulse) lipgloss.Style {
	switch pulse {
	case domain.PulseQueued, domain.PulsePaused:
		return s.pulseQueued
	case domain.PulsePlanning, domain.PulseWorking:
		return s.pulseActive
	case domain.PulseAwaitingApproval:
		return s.pulseAttention
	case domain.PulseCompleted:
		return s.pulseDone
	case domain.PulseFailed:
		return s.pulseFailed
	default:
		return s.pulseUnknown
	}
}
