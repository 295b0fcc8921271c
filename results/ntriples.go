package results

import (
	"bufio"
	"io"
	"strings"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// maxLineSize bounds a single N-Triples statement.
const maxLineSize = 16 << 20

// DecodeNTriples streams a graph result, one triple per line. Blank lines and
// comment lines are skipped.
func DecodeNTriples(body io.ReadCloser) Source {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	line := 0
	return newStream(FormGraph, GraphColumns, body, func() (Row, error) {
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			t, err := rdf.ParseTriple(text)
			if err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid triple on line %d", line)
			}
			return Row{t.Subject, t.Predicate, t.Object}, nil
		}
		if err := scanner.Err(); err != nil {
			return nil, sparqlerr.Execution(err, "failed to read graph result")
		}
		return nil, io.EOF
	})
}
