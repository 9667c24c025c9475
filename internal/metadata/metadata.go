// Package metadata derives a title and event date from transcript filenames.
package metadata

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is the event date used when the filename carries none.
const NotAvailable = "N/A"

const transcriptMarker = " Transcrição"

var months = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var monthByAbbr = map[string]string{
	"Jan": "Janeiro", "Fev": "Fevereiro", "Mar": "Março", "Abr": "Abril",
	"Mai": "Maio", "Jun": "Junho", "Jul": "Julho", "Ago": "Agosto",
	"Set": "Setembro", "Out": "Outubro", "Nov": "Novembro", "Dez": "Dezembro",
}

var reMonthYear = regexp.MustCompile(`(?i)(Jan|Fev|Mar|Abr|Mai|Jun|Jul|Ago|Set|Out|Nov|Dez)\s+(\d{4})`)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// Info is the metadata handed to the enricher alongside the text.
type Info struct {
	Title     string
	EventDate string
}

// FromFilename strips the extension and transcript marker from filename and
// looks for a "<month abbreviation> <year>" pair.
func FromFilename(filename string) Info {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.TrimSpace(strings.TrimSuffix(name, transcriptMarker))

	info := Info{Title: name, EventDate: NotAvailable}

	m := reMonthYear.FindStringSubmatch(name)
	if m == nil {
		return info
	}

	abbr := titleCaser.String(m[1])
	month, ok := monthByAbbr[abbr]
	if !ok {
		month = abbr
	}
	year := m[2]
	info.EventDate = fmt.Sprintf("%s de %s", month, year)

	if strings.Contains(name, "MasterMind") {
		info.Title = fmt.Sprintf("MasterMind %s %s", month, year)
	}
	return info
}

// FormatDate renders t as "<day> de <Mês> de <year>".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
