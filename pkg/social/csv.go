package social

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Posts is an in memory CSV table of extracted social media posts, a
// header row plus one record per post.
type Posts struct {
	Columns []string
	Records [][]string
}

// ReadPosts loads a posts table from a CSV file. The first row is the
// header.
func ReadPosts(path string) (*Posts, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", path)
	}

	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read '%s'", path)
	}

	if len(rows) == 0 {
		return nil, errors.Errorf("'%s' has no header row", path)
	}

	return &Posts{
		Columns: rows[0],
		Records: rows[1:],
	}, nil
}

// Column returns the index of the named column.
func (p *Posts) Column(name string) (int, error) {
	for i, c := range p.Columns {
		if c == name {
			return i, nil
		}
	}

	return 0, errors.Errorf("no column '%s'", name)
}

// EnsureColumn returns the index of the named column, appending it to
// the table when missing. Existing values of the column are cleared.
func (p *Posts) EnsureColumn(name string) int {
	idx, err := p.Column(name)
	if err != nil {
		p.Columns = append(p.Columns, name)
		idx = len(p.Columns) - 1
	}

	for i := range p.Records {
		for len(p.Records[i]) < len(p.Columns) {
			p.Records[i] = append(p.Records[i], "")
		}

		p.Records[i][idx] = ""
	}

	return idx
}

// Write writes the table as CSV, header first.
func (p *Posts) Write(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(p.Columns); err != nil {
		return errors.WithStack(err)
	}

	if err := writer.WriteAll(p.Records); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// WriteFile writes the table as a CSV file at path.
func (p *Posts) WriteFile(path string) error {
	var buf bytes.Buffer

	if err := p.Write(&buf); err != nil {
		return errors.WithStack(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "could not write '%s'", path)
	}

	return nil
}
