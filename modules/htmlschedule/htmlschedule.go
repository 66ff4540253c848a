// Отрисовка недельного расписания в картинку
package htmlschedule

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

const pageTmpl = `<html lang="ru">
<head>
<meta charset="UTF-8">
<title>Расписание на неделю</title>
</head>
<style>
html{font-size:1.3rem}body{background:#fff;font-family:monospace}
.note div{background-color:#f0f8ff;padding:10px;text-align:center;border-radius:10px;margin:10px 0}
table{table-layout:fixed;width:100%;border-spacing:5px 5px}
th,td{background-color:#f0f8ff;padding:8px;border-radius:10px;font-size:.8rem;text-align:center;vertical-align:top}
tr:first-child th{background-color:#0ff}
</style>
<body>
<div class="note"><div>{{.Header}}</div></div>
<div class="note"><div>{{.Interval}}</div></div>
<table>
{{- range .Grid}}
<tr>
{{- range .}}
<td>{{.}}</td>
{{- end}}
</tr>
{{- end}}
</table>
</body>
</html>
`

// CreateWeekImg создаёт HTML-вёрстку недельной таблицы преподавателя и
// прогоняет её через wkhtmltoimage. Готовая картинка остаётся в imgPath
// и отдаётся пользователям до следующего обновления недели
func CreateWeekImg(execute, imgPath, interval string, section timetable.WeekSection) error {
	html, err := renderHTML(section.Teacher, interval, section.Grid)
	if err != nil {
		return err
	}

	if _, err := os.Stat(imgPath); os.IsNotExist(err) {
		if err := os.MkdirAll(imgPath, os.ModePerm); err != nil {
			return err
		}
	}

	input := filepath.Join(imgPath, section.Teacher+".html")
	output := filepath.Join(imgPath, section.Teacher+".jpg")
	if err := os.WriteFile(input, []byte(html), 0o644); err != nil {
		return err
	}

	cmd := exec.Command(execute, []string{
		"-q",
		"--width",
		"1600",
		input,
		output,
	}...) // #nosec G204
	cmd.Stderr = log.Default().Writer()
	cmd.Stdout = log.Default().Writer()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wkhtmltoimage %s: %w", section.Teacher, err)
	}

	return os.Remove(input)
}

func renderHTML(teacher, interval string, grid [][]string) (string, error) {
	tmpl, err := template.New("week").Parse(pageTmpl)
	if err != nil {
		return "", err
	}

	data := struct {
		Header   string
		Interval string
		Grid     [][]string
	}{
		Header:   teacher,
		Interval: interval,
		Grid:     grid,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}

	return rendered.String(), nil
}
