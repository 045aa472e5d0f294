package sallacsv

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain"
)

// Level nivel de una entrada del log de parseo.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// LogEntry entrada de diagnóstico. En errores de fila lleva el contenido crudo y las columnas halladas.
type LogEntry struct {
	Level       Level  `json:"level"`
	Line        int    `json:"line,omitempty"`
	Message     string `json:"message"`
	Raw         string `json:"raw,omitempty"`
	ColumnCount int    `json:"column_count,omitempty"`
}

// Summary conteos del archivo.
type Summary struct {
	TotalRows  int    `json:"total_rows"`
	ParsedRows int    `json:"parsed_rows"`
	ErrorRows  int    `json:"error_rows"`
	Warnings   int    `json:"warnings"`
	Delimiter  string `json:"delimiter"`
}

// Result filas leídas + log + resumen. Rows nunca incluye filas con error estructural.
type Result struct {
	Rows    []Row      `json:"rows"`
	Log     []LogEntry `json:"log"`
	Summary Summary    `json:"summary"`
}

// Options contexto de parseo.
type Options struct {
	Location *time.Location   // zona de las fechas del archivo; nil = UTC
	Now      func() time.Time // sustituto de fechas inválidas; nil = time.Now
}

// Parse variante estricta: si alguna fila falla devuelve ErrRowsFailed.
func Parse(content string, opts Options) ([]Row, error) {
	res := ParseWithLog(content, opts)
	if res.Summary.ErrorRows > 0 {
		return nil, fmt.Errorf("%w: %d de %d filas", domain.ErrRowsFailed, res.Summary.ErrorRows, res.Summary.TotalRows)
	}
	return res.Rows, nil
}

// ParseWithLog lee el archivo completo y siempre devuelve los resultados parciales.
func ParseWithLog(content string, opts Options) Result {
	e := &env{loc: opts.Location, now: opts.Now}
	if e.loc == nil {
		e.loc = time.UTC
	}
	if e.now == nil {
		e.now = time.Now
	}

	p := &parser{res: Result{Rows: []Row{}, Log: []LogEntry{}}}
	records := mergeRecords(content)
	if len(records) == 0 {
		p.log(LevelError, 0, "archivo vacío", "", 0)
		p.res.Summary.Delimiter = ","
		return p.res
	}

	header := records[0]
	delim := detectDelimiter(header.text)
	p.res.Summary.Delimiter = string(delim)
	p.log(LevelInfo, header.line, fmt.Sprintf("delimitador detectado: %s", delimiterName(delim)), "", 0)

	if n := len(split(header.text, delim)); n != ColumnCount {
		p.log(LevelWarning, header.line, fmt.Sprintf("la cabecera tiene %d columnas, se esperaban %d", n, ColumnCount), header.text, n)
	}

	for _, rec := range records[1:] {
		p.res.Summary.TotalRows++
		p.row(rec, delim, e)
	}

	p.log(LevelInfo, 0, fmt.Sprintf("%d filas: %d leídas, %d con error, %d advertencias",
		p.res.Summary.TotalRows, p.res.Summary.ParsedRows, p.res.Summary.ErrorRows, p.res.Summary.Warnings), "", 0)
	return p.res
}

type parser struct {
	res Result
}

func (p *parser) log(level Level, line int, msg, raw string, cols int) {
	if level == LevelWarning {
		p.res.Summary.Warnings++
	}
	p.res.Log = append(p.res.Log, LogEntry{Level: level, Line: line, Message: msg, Raw: raw, ColumnCount: cols})
}

func (p *parser) row(rec record, delim rune, e *env) {
	fields := split(rec.text, delim)
	if len(fields) < ColumnCount {
		p.res.Summary.ErrorRows++
		p.log(LevelError, rec.line, fmt.Sprintf("fila con %d columnas, se requieren %d", len(fields), ColumnCount), rec.text, len(fields))
		return
	}
	if len(fields) > ColumnCount {
		p.log(LevelWarning, rec.line, fmt.Sprintf("fila con %d columnas, se ignoran las sobrantes", len(fields)), rec.text, len(fields))
	}

	r := Row{Line: rec.line}
	for i, col := range columns {
		if err := col.parse(&r, fields[i], e); err != nil {
			p.log(LevelWarning, rec.line, fmt.Sprintf("%s: %v", col.name, err), fields[i], len(fields))
		}
	}
	p.res.Rows = append(p.res.Rows, r)
	p.res.Summary.ParsedRows++
	p.log(LevelSuccess, rec.line, fmt.Sprintf("pedido %s: %d productos", r.OrderNumber, len(r.Products)), "", 0)
}

// record registro lógico: una o más líneas físicas unidas.
type record struct {
	line int
	text string
}

// mergeRecords une las líneas partidas dentro de un campo entre comillas: una línea con
// cantidad impar de comillas abre (o cierra) una región que continúa en las siguientes.
// Las líneas en blanco fuera de comillas se descartan.
func mergeRecords(content string) []record {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var (
		out   []record
		buf   strings.Builder
		start int
		open  bool
	)
	for i, ln := range strings.Split(content, "\n") {
		if open {
			buf.WriteByte('\n')
		} else {
			buf.Reset()
			start = i + 1
		}
		buf.WriteString(ln)
		if strings.Count(ln, `"`)%2 == 1 {
			open = !open
		}
		if !open && strings.TrimSpace(buf.String()) != "" {
			out = append(out, record{line: start, text: buf.String()})
		}
	}
	if open && strings.TrimSpace(buf.String()) != "" {
		out = append(out, record{line: start, text: buf.String()})
	}
	return out
}

// Prioridad de delimitadores y mínimo de apariciones en la cabecera para elegir por prioridad.
var delimiters = []rune{'\t', ',', ';'}

const delimiterMinCount = 10

// detectDelimiter elige por prioridad el primero con al menos delimiterMinCount apariciones
// en la cabecera; si ninguno llega, el más frecuente (coma si no hay ninguno).
func detectDelimiter(header string) rune {
	counts := make(map[rune]int, len(delimiters))
	for _, d := range delimiters {
		counts[d] = strings.Count(header, string(d))
		if counts[d] >= delimiterMinCount {
			return d
		}
	}
	best, bestN := ',', 0
	for _, d := range delimiters {
		if counts[d] > bestN {
			best, bestN = d, counts[d]
		}
	}
	return best
}

func delimiterName(d rune) string {
	switch d {
	case '\t':
		return "tabulador"
	case ';':
		return "punto y coma"
	default:
		return "coma"
	}
}

// split separa un registro. Con tabulador el corte es directo; con coma o punto y coma
// respeta comillas ("" dentro de comillas es una comilla literal).
func split(line string, delim rune) []string {
	if delim == '\t' {
		return strings.Split(line, "\t")
	}
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"' && quoted && i+1 < len(runes) && runes[i+1] == '"':
			cur.WriteRune('"')
			i++
		case c == '"':
			quoted = !quoted
		case c == delim && !quoted:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	return append(fields, cur.String())
}
