// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyMode configures lipgloss for the configured theme name.
// "dark" and "light" pin the background; "auto" keeps terminal detection.
// NO_COLOR disables color entirely.
func ApplyMode(mode string) {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	switch strings.ToLower(mode) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND TABS
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	BadgeHealthy   lipgloss.Style
	BadgeDegraded  lipgloss.Style
	BadgeUnknown   lipgloss.Style
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style
	SourceLabel     lipgloss.Style
	SourceItem      lipgloss.Style
	Confidence      lipgloss.Style
	Thinking        lipgloss.Style
	EmptyTitle      lipgloss.Style
	EmptySubtitle   lipgloss.Style
	InputContainer  lipgloss.Style
	InputDisabled   lipgloss.Style

	// ==========================================================================
	// KNOWLEDGE BASE
	// ==========================================================================

	EntryTitle      lipgloss.Style
	EntrySelected   lipgloss.Style
	EntryContent    lipgloss.Style
	EntryMeta       lipgloss.Style
	CategoryBadge   lipgloss.Style
	Tag             lipgloss.Style
	FormContainer   lipgloss.Style
	FormTitle       lipgloss.Style
	FieldLabel      lipgloss.Style
	FieldFocused    lipgloss.Style
	FieldBlurred    lipgloss.Style
	ButtonPrimary   lipgloss.Style
	ButtonSecondary lipgloss.Style
	ButtonDanger    lipgloss.Style

	// ==========================================================================
	// FEEDBACK
	// ==========================================================================

	ErrorBanner lipgloss.Style
	Dialog      lipgloss.Style
	StatusBar   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	Muted       lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: lipgloss.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.BadgeHealthy = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.BadgeDegraded = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.BadgeUnknown = lipgloss.NewStyle().Foreground(TextMuted)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	// Chat
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.RoleLabel = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

	t.SourceLabel = lipgloss.NewStyle().Foreground(TextSecondary).Bold(true)
	t.SourceItem = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Confidence = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.Thinking = lipgloss.NewStyle().Foreground(Cyan)

	t.EmptyTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.EmptySubtitle = lipgloss.NewStyle().Foreground(TextSecondary)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.InputDisabled = t.InputContainer.
		BorderForeground(Overlay)

	// Knowledge base
	t.EntryTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.EntrySelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		Background(SelectionBg).
		PaddingLeft(1)
	t.EntryContent = lipgloss.NewStyle().Foreground(TextSecondary)
	t.EntryMeta = lipgloss.NewStyle().Foreground(TextMuted)

	t.CategoryBadge = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Tag = lipgloss.NewStyle().
		Foreground(Cyan)

	t.FormContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.FormTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.FieldFocused = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.FieldBlurred = lipgloss.NewStyle().Foreground(TextMuted)

	t.ButtonPrimary = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2)
	t.ButtonSecondary = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2)
	t.ButtonDanger = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 2)

	// Feedback
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Background(RoseDeep).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		Padding(0, 1)

	t.Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 2)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.HelpDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth returns the width available to a chat bubble.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-4, 10)
	case LayoutMedium:
		return t.Width * 4 / 5
	default:
		return t.Width * 3 / 4
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
