// Package tablefile reads and writes tables as delimited text files.
package tablefile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-datarails/pkg/table"
)

var ErrNoHeader = errors.New("missing header row")

const defaultConcurrency = 4

type options struct {
	delimiter   rune
	concurrency int
}

type Option func(o *options)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithConcurrency bounds the number of files ReadFiles opens at once.
func WithConcurrency(concurrency int) Option {
	return func(o *options) {
		o.concurrency = concurrency
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		delimiter:   ',',
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	return o
}

// Read parses delimited text. The first record is the header, every column is
// read as a string column.
func Read(r io.Reader, opts ...Option) (*table.Table, error) {
	o := newOptions(opts)

	reader := csv.NewReader(r)
	reader.Comma = o.delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read records")
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	tbl, err := table.FromRecords(records[0], records[1:])
	if err != nil {
		return nil, errors.Wrap(err, "unable to build table")
	}

	return tbl, nil
}

// ReadFile reads the delimited file at path.
func ReadFile(path string, opts ...Option) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	tbl, err := Read(file, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return tbl, nil
}

// ReadFiles reads several files concurrently. The tables are returned in the
// order of paths, and the first failure cancels the remaining reads.
func ReadFiles(ctx context.Context, paths []string, opts ...Option) ([]*table.Table, error) {
	o := newOptions(opts)
	tables := make([]*table.Table, len(paths))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(o.concurrency)

	for i, path := range paths {
		i, path := i, path
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "unable to read %s", path)
			}

			tbl, err := ReadFile(path, opts...)
			if err != nil {
				return err
			}
			tables[i] = tbl

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return tables, nil
}

// Write renders tbl as delimited text, header first.
func Write(w io.Writer, tbl *table.Table, opts ...Option) error {
	o := newOptions(opts)

	writer := csv.NewWriter(w)
	writer.Comma = o.delimiter

	header, records := tbl.Records()

	err := writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	err = writer.WriteAll(records)
	if err != nil {
		return errors.Wrap(err, "unable to write records")
	}

	return nil
}

// WriteFile writes tbl to path, creating parent directories as needed.
func WriteFile(path string, tbl *table.Table, opts ...Option) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create directory for %s", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "unable to close %s", path)
		}
	}()

	err = Write(file, tbl, opts...)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	return nil
}
