package render

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"gopkg.in/yaml.v3"
)

// HistoryRenderer renders recorded migrations
type HistoryRenderer struct {
	out    io.Writer
	asYAML bool
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, asYAML bool) *HistoryRenderer {
	return &HistoryRenderer{out: out, asYAML: asYAML}
}

// Render renders the migrations as a table, or as YAML documents
func (r *HistoryRenderer) Render(result *usecase.ListMigrationsResult) error {
	if r.asYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result.Migrations); err != nil {
			return fmt.Errorf("failed to encode migrations: %w", err)
		}
		return enc.Close()
	}

	if len(result.Migrations) == 0 {
		fmt.Fprintln(r.out, "No migrations recorded")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"Started", "Network", "Status", "WETH", "ICO", "Duration"})
	for _, m := range result.Migrations {
		t.AppendRow(table.Row{
			humanize.Time(m.StartedAt),
			m.Network,
			statusCell(m),
			contractCell(m.WETH),
			contractCell(m.ICO),
			m.Duration().Round(100 * time.Millisecond).String(),
		})
	}
	t.Render()
	return nil
}

func statusCell(m *models.Migration) string {
	if m.Status == models.MigrationStatusCompleted {
		return successStyle.Sprint(m.Status)
	}
	if m.Error != "" {
		return errorStyle.Sprintf("%s: %s", m.Status, m.Error)
	}
	return errorStyle.Sprint(m.Status)
}

func contractCell(c models.ContractRecord) string {
	if c.Address == "" {
		return "-"
	}
	if c.Deployed {
		return c.Address + labelStyle.Sprint(" *")
	}
	return c.Address
}
