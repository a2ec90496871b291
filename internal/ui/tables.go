package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/sensing-garden/trellis/internal/garden"
)

func newTable(t tab, theme Theme) table.Model {
	model := table.New(
		table.WithColumns(tableColumns(t)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	applyTableStyles(&model, theme)
	return model
}

func applyTableStyles(model *table.Model, theme Theme) {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	styles.Cell = styles.Cell.
		Foreground(lipgloss.Color(theme.Text))
	model.SetStyles(styles)
}

func tableColumns(t tab) []table.Column {
	switch t {
	case tabClassifications:
		return []table.Column{
			{Title: "Time", Width: 19},
			{Title: "Device", Width: 16},
			{Title: "Species", Width: 24},
			{Title: "Conf", Width: 5},
			{Title: "Track", Width: 14},
			{Title: "PM2.5", Width: 6},
		}
	case tabDetections:
		return []table.Column{
			{Title: "Time", Width: 19},
			{Title: "Device", Width: 16},
			{Title: "Model", Width: 20},
			{Title: "Box", Width: 24},
		}
	case tabDevices:
		return []table.Column{
			{Title: "Device", Width: 28},
			{Title: "Created", Width: 19},
		}
	case tabEnvironment:
		return []table.Column{
			{Title: "Time", Width: 19},
			{Title: "Device", Width: 16},
			{Title: "PM2.5", Width: 6},
			{Title: "PM10", Width: 6},
			{Title: "Temp", Width: 6},
			{Title: "Hum", Width: 5},
			{Title: "VOC", Width: 5},
			{Title: "NOx", Width: 5},
		}
	default:
		return nil
	}
}

func classificationRows(items []garden.Classification) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{
			formatTimestamp(item.Timestamp),
			item.DeviceID,
			item.Species,
			formatConfidence(item.SpeciesConfidence),
			item.TrackID,
			envCell(item.Environment, garden.FieldPM2p5),
		})
	}
	return rows
}

func detectionRows(items []garden.Detection) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{
			formatTimestamp(item.Timestamp),
			item.DeviceID,
			item.ModelID,
			formatBoundingBox(item.BoundingBox),
		})
	}
	return rows
}

func deviceRows(items []garden.Device) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{item.DeviceID, formatTimestamp(item.Created)})
	}
	return rows
}

func environmentRows(items []garden.EnvironmentReading) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{
			formatTimestamp(item.Timestamp),
			item.DeviceID,
			envCell(item.Environment, garden.FieldPM2p5),
			envCell(item.Environment, garden.FieldPM10p0),
			envCell(item.Environment, garden.FieldAmbientTemperature),
			envCell(item.Environment, garden.FieldAmbientHumidity),
			envCell(item.Environment, garden.FieldVOCIndex),
			envCell(item.Environment, garden.FieldNOxIndex),
		})
	}
	return rows
}

// envCell renders one sensor field, or a dash when the reading is absent.
func envCell(env garden.EnvironmentData, field string) string {
	value, ok := env[field]
	if !ok {
		return "-"
	}
	switch n := value.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', 1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprintf("%v", n)
	}
}

func formatTimestamp(ts string) string {
	if ts == "" {
		return "-"
	}
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04:05")
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', 2, 64)
}

func formatBoundingBox(box []float64) string {
	if len(box) != 4 {
		return "-"
	}
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", box[0], box[1], box[2], box[3])
}
