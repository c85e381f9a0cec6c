// Package importer turns operator supplied CSV text into validated task and
// resource records.
package importer

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// byteOrderMark is written by spreadsheet tools saving "CSV UTF-8".
const byteOrderMark = "\ufeff"

// row is one data line keyed by normalized header name.
type row struct {
	number int
	fields map[string]string
}

func (r row) get(key string) string { return r.fields[key] }

func (r row) missing(required []string) []string {
	var out []string
	for _, k := range required {
		if r.fields[k] == "" {
			out = append(out, k)
		}
	}
	return out
}

// readRows splits text into header keyed rows. Blank lines are skipped but
// still advance the row number, which is the 1-based line number in the file.
//
// A leading byte order mark is dropped. A double quote toggles quoting and is dropped. There is no escape for a
// literal quote inside a quoted field.
func readRows(text string) []row {
	text = strings.TrimPrefix(text, byteOrderMark)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}

	delim := delimiter(lines[0])
	var headers []string
	for _, h := range strings.Split(lines[0], string(delim)) {
		headers = append(headers, normalizeHeader(h))
	}

	var rows []row
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := splitLine(line, delim)
		fields := make(map[string]string, len(headers))
		for idx, h := range headers {
			if idx < len(cols) {
				fields[h] = cols[idx]
			} else {
				fields[h] = ""
			}
		}
		rows = append(rows, row{number: i + 2, fields: fields})
	}
	return rows
}

// delimiter is a semicolon only when the header has semicolons and no commas.
func delimiter(header string) rune {
	if strings.Contains(header, ";") && !strings.Contains(header, ",") {
		return ';'
	}
	return ','
}

func normalizeHeader(h string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "_")
}

func splitLine(line string, delim rune) []string {
	var (
		cols   []string
		cur    strings.Builder
		quoted bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
		case ch == delim && !quoted:
			cols = append(cols, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(cols, strings.TrimSpace(cur.String()))
}
