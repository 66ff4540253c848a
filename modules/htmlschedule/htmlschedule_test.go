package htmlschedule

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	grid := [][]string{
		{"Пара", "понедельник, 01.09.2025", "вторник, 02.09.2025"},
		{"№1", "Группа 123 каб. 204", ""},
	}

	html, err := renderHTML("Иванов И. И.", "01.09.2025 - 06.09.2025", grid)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Иванов И. И.",
		"01.09.2025 - 06.09.2025",
		"понедельник, 01.09.2025",
		"Группа 123 каб. 204",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("render lost %q", want)
		}
	}

	// Две строки таблицы, пустая ячейка не схлопывается
	if strings.Count(html, "<tr>") != 2 {
		t.Errorf("rows: %d", strings.Count(html, "<tr>"))
	}
	if strings.Count(html, "<td>") != 6 {
		t.Errorf("cells: %d", strings.Count(html, "<td>"))
	}
}

func TestRenderHTMLEmptyGrid(t *testing.T) {
	html, err := renderHTML("Иванов И. И.", "01.09.2025 - 06.09.2025", nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<tr>") {
		t.Error("empty grid produced rows")
	}
}
