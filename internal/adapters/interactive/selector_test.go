package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySearch(t *testing.T) {
	items := []string{"development", "mainnet", "sepolia"}
	search := createFuzzySearchFunc(items)

	tests := []struct {
		input string
		index int
		want  bool
	}{
		{"", 0, true},
		{"dev", 0, true},
		{"DEV", 0, true},
		{"mnt", 1, true},
		{"spl", 2, true},
		{"xyz", 1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, search(tt.input, tt.index), "input %q index %d", tt.input, tt.index)
	}
}

func TestFormatNetworkOptions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	project := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"development": {RPCURL: "http://localhost:7545", Kind: config.NetworkKindDevelopment},
			"mainnet":     {Kind: config.NetworkKindLive},
		},
	}

	options := formatNetworkOptions(project, []string{"development", "mainnet"})
	assert.Equal(t, []string{
		"development [development] (http://localhost:7545)",
		"mainnet [live]",
	}, options)
}

func TestSelectNetworkShortcuts(t *testing.T) {
	t.Run("non-interactive refuses to prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectNetwork(context.Background(), []string{"a", "b"})
		require.Error(t, err)
	})

	t.Run("single option is returned directly", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		name, err := s.SelectNetwork(context.Background(), []string{"test"})
		require.NoError(t, err)
		assert.Equal(t, "test", name)
	})
}
