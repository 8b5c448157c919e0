// Command pbjdump is a terminal inspector for PBJ wire-format files: it
// decodes a message and renders its fields and unknown-field set, the
// same information protobuf3.DebugPrint used to dump as a flat string,
// but as a navigable Bubble Tea view. Accepts --type (timestamp|sample)
// and a path to a raw wire-format file.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/gen"
)

// fieldRow is one rendered line of a decoded message: a name/value pair,
// or an unknown-field entry carried through from the wire.
type fieldRow struct {
	name    string
	value   string
	unknown bool
}

type model struct {
	title  string
	rows   []fieldRow
	cursor int
	width  int
	height int
}

func newModel(title string, rows []fieldRow) model {
	return model{title: title, rows: rows}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func (m model) View() string {
	var out string
	out += headerStyle.Render(m.title) + "\n\n"
	for i, row := range m.rows {
		line := fmt.Sprintf("%-24s %s", row.name, row.value)
		if row.unknown {
			line = unknownStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		out += line + "\n"
	}
	out += "\n(j/k or arrows to move, q to quit)\n"
	return out
}

func timestampRows(t gen.Timestamp) []fieldRow {
	rows := []fieldRow{
		{name: "seconds", value: fmt.Sprintf("%d", t.Seconds)},
		{name: "nanos", value: fmt.Sprintf("%d", t.Nanos)},
	}
	return append(rows, unknownRows(t.UnknownFields())...)
}

func sampleRows(s gen.Sample) []fieldRow {
	rows := []fieldRow{
		{name: "numbers", value: fmt.Sprintf("%v", s.Numbers)},
	}
	if s.Choice.IsSet() {
		val, _ := s.Choice.Value()
		rows = append(rows, fieldRow{name: fmt.Sprintf("choice[%d]", s.Choice.Kind()), value: fmt.Sprintf("%v", val)})
	}
	rows = append(rows, fieldRow{name: "tags", value: fmt.Sprintf("%v", s.Tags)})
	return append(rows, unknownRows(s.UnknownFields())...)
}

func unknownRows(list *codec.UnknownFieldList) []fieldRow {
	var rows []fieldRow
	for _, uf := range list.Ordered() {
		rows = append(rows, fieldRow{
			name:    fmt.Sprintf("unknown[%d]", uf.Field),
			value:   fmt.Sprintf("%d bytes, wire type %d", uf.Bytes.Len(), uf.WireType),
			unknown: true,
		})
	}
	return rows
}

func main() {
	var msgType string

	root := &cobra.Command{
		Use:   "pbjdump [path]",
		Short: "Inspect a PBJ wire-format file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			var rows []fieldRow
			switch msgType {
			case "timestamp":
				t, err := gen.ParseTimestamp(buffer.Wrap(raw), codec.DefaultParseConfig())
				if err != nil {
					return fmt.Errorf("decoding timestamp: %w", err)
				}
				rows = timestampRows(t)
			case "sample":
				s, err := gen.ParseSample(buffer.Wrap(raw), codec.DefaultParseConfig())
				if err != nil {
					return fmt.Errorf("decoding sample: %w", err)
				}
				rows = sampleRows(s)
			default:
				return fmt.Errorf("unknown --type %q (want timestamp or sample)", msgType)
			}

			p := tea.NewProgram(newModel(fmt.Sprintf("%s (%s)", args[0], msgType), rows))
			_, err = p.Run()
			return err
		},
	}
	root.Flags().StringVar(&msgType, "type", "timestamp", "message type to decode (timestamp|sample)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
