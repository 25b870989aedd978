// Package render formats recipes and application state for the terminal
package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/pageza/pantry-chef/internal/app"
	"github.com/pageza/pantry-chef/internal/model"
)

const (
	WelcomeTitle   = "Welcome to Pantry Chef!"
	WelcomeMessage = "Add the ingredients you have on hand, and our AI chef will whip up some delicious recipes for you."
)

var (
	colorAccent = lipgloss.Color("#F97316")
	colorMuted  = lipgloss.Color("#6B7280")
	colorError  = lipgloss.Color("#DC2626")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	tagStyle     = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#FFEDD5")).Foreground(lipgloss.Color("#9A3412"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1).Width(72)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	loadingStyle = lipgloss.NewStyle().Italic(true).Foreground(colorAccent)
)

// PlaceholderImageURL returns a stable stock image for a recipe without one
func PlaceholderImageURL(name string) string {
	seed := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/300", seed)
}

// ImageFor returns the recipe's image or its placeholder
func ImageFor(r model.Recipe) string {
	if r.HasImage() {
		return r.ImageURL
	}
	return PlaceholderImageURL(r.Name)
}

// Card renders one recipe
func Card(r model.Recipe) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(r.Description))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • " + ing + "\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Instructions"))
	b.WriteString("\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Image: " + imageLine(r)))

	return cardStyle.Render(b.String())
}

// data URIs are too long to print, so only their media type is shown
func imageLine(r model.Recipe) string {
	url := ImageFor(r)
	if strings.HasPrefix(url, "data:") {
		mime, _, _ := strings.Cut(strings.TrimPrefix(url, "data:"), ";")
		return fmt.Sprintf("embedded %s (%d bytes encoded)", mime, len(url))
	}
	return url
}

// Cards renders all recipes stacked vertically
func Cards(recipes []model.Recipe) string {
	cards := make([]string, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, Card(r))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Tags renders the ingredient list as inline tags
func Tags(ingredients []string) string {
	if len(ingredients) == 0 {
		return mutedStyle.Render("No ingredients yet.")
	}
	tags := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		tags = append(tags, tagStyle.Render(ing))
	}
	return strings.Join(tags, " ")
}

func Loading(message string) string {
	return loadingStyle.Render("⏳ " + message)
}

func Error(message string) string {
	return errorStyle.Render("Error: " + message)
}

func Welcome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(WelcomeTitle),
		mutedStyle.Render(WelcomeMessage),
	)
}

// State renders whichever view matches the current phase
func State(s app.State) string {
	switch {
	case s.IsLoading:
		return Loading(s.LoadingMessage)
	case s.ErrorMessage != "":
		return Error(s.ErrorMessage)
	case len(s.Recipes) > 0:
		return Cards(s.Recipes)
	default:
		return Welcome()
	}
}
