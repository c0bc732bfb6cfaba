package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mabbasbangash97/codevibe/internal/model"
)

// Render prints the streak summary, the activity chart over the
// recorded history, and a per-day table, newest first.
func Render(w io.Writer, data model.StreakData) error {
	if _, err := fmt.Fprintf(w, "Current streak: %d\n", data.CurrentStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Longest streak: %d\n", data.LongestStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total days:     %d\n", data.TotalCodingDays); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Today:          %d chars\n", data.TodayCharCount); err != nil {
		return err
	}
	if len(data.History) == 0 {
		return nil
	}

	values := make([]float64, len(data.History))
	for i, entry := range data.History {
		values[i] = float64(entry.CharCount)
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := Chart(w, "Activity (chars/day)", values, 0, 0); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	headers := []string{"Date", "Chars", "Mood"}
	rows := make([][]string, 0, len(data.History))
	for i := len(data.History) - 1; i >= 0; i-- {
		entry := data.History[i]
		mood := string(entry.Mood)
		if mood == "" {
			mood = "-"
		}
		rows = append(rows, []string{entry.Date, fmt.Sprintf("%d", entry.CharCount), mood})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if w := utf8.RuneCountInString(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlignCols))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padColumn(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padColumn(value string, width int, rightAlign bool) string {
	pad := width - utf8.RuneCountInString(value)
	if pad <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", pad) + value
	}
	return value + strings.Repeat(" ", pad)
}
