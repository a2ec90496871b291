package ui

import (
	"fmt"
	"strings"
)

func (m *Model) renderHeader(styles Styles) string {
	parts := []string{styles.Logo.Render("trellis")}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("API OFFLINE"))
		if m.snapshot.LastError != nil {
			parts = append(parts, styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), 60)))
		}
	case !m.snapshot.HasData:
		parts = append(parts, styles.WarningText.Render("Connecting to Sensing Garden..."))
	default:
		parts = append(parts, styles.SuccessText.Render("CONNECTED"))
		counts := m.snapshot.Counts
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf(
			"classifications %d  detections %d  devices %d  env %d",
			counts.Classifications, counts.Detections, counts.Devices, counts.Environment)))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Render(m.snapshot.LastUpdated.Format("15:04:05")))
	}

	return strings.Join(parts, "  ")
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		if len(s) <= max {
			return s
		}
		return s[:max]
	}
	return s[:max-3] + "..."
}
