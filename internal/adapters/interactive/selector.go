package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork lets the user pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, names []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}

	if len(names) == 1 {
		return names[0], nil
	}

	options := formatNetworkOptions(s.config.Project, names)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     "Select network",
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(names),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return names[index], nil
}

// formatNetworkOptions creates display strings like "mainnet [live] (https://...)"
func formatNetworkOptions(project *config.ProjectConfig, names []string) []string {
	options := make([]string, len(names))
	for i, name := range names {
		kind := domain.KindForName(name)
		rpcURL := ""
		if project != nil {
			if network, ok := project.Networks[name]; ok {
				kind = network.Kind
				rpcURL = network.RPCURL
			}
		}

		nameStr := color.New(color.FgWhite, color.Bold).Sprint(name)
		kindStr := kindColor(kind).Sprintf("[%s]", kind)
		if rpcURL != "" {
			options[i] = fmt.Sprintf("%s %s (%s)", nameStr, kindStr, color.New(color.FgBlue).Sprint(rpcURL))
		} else {
			options[i] = fmt.Sprintf("%s %s", nameStr, kindStr)
		}
	}
	return options
}

func kindColor(kind config.NetworkKind) *color.Color {
	switch kind {
	case config.NetworkKindDevelopment:
		return color.New(color.FgGreen)
	case config.NetworkKindTest:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		matches := fuzzy.Find(input, []string{item})
		return len(matches) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
