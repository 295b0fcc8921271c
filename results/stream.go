package results

import (
	"errors"
	"io"

	"github.com/rdfsql/gosparql/sparqlerr"
)

// decodeFunc decodes the next row of a stream, returning io.EOF at the end.
type decodeFunc func() (Row, error)

// stream adapts a decodeFunc to Source with one row of lookahead. A decoding
// error is sticky: once a row fails, every later call fails the same way.
type stream struct {
	form    Form
	columns []string
	body    io.Closer
	decode  decodeFunc

	peeked  Row
	hasPeek bool
	done    bool
	err     error
	closed  bool
}

func newStream(form Form, columns []string, body io.Closer, decode decodeFunc) *stream {
	return &stream{form: form, columns: columns, body: body, decode: decode}
}

func (s *stream) Columns() []string { return s.columns }

func (s *stream) Form() Form { return s.form }

func (s *stream) HasNext() (bool, error) {
	if s.closed || s.done {
		return false, nil
	}
	if s.err != nil {
		return false, s.err
	}
	if s.hasPeek {
		return true, nil
	}
	row, err := s.decode()
	if errors.Is(err, io.EOF) {
		s.done = true
		return false, nil
	}
	if err != nil {
		var se *sparqlerr.Error
		if !errors.As(err, &se) || se.Kind != sparqlerr.KindExecutionFailed {
			err = sparqlerr.MalformedResponse(err, "failed to decode %v result", s.form)
		}
		s.err = err
		return false, err
	}
	if len(row) != len(s.columns) {
		s.err = sparqlerr.MalformedResponse(nil, "row has %d values, result has %d columns", len(row), len(s.columns))
		return false, s.err
	}
	s.peeked, s.hasPeek = row, true
	return true, nil
}

func (s *stream) Next() (Row, error) {
	ok, err := s.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	row := s.peeked
	s.peeked, s.hasPeek = nil, false
	return row, nil
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.peeked, s.hasPeek = nil, false
	if s.body == nil {
		return nil
	}
	return s.body.Close()
}
