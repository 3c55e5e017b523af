// Package logfile reads static newline-delimited JSON log files into tables.
//
// Each line is parsed on its own. Lines that are not JSON objects are skipped
// without error. Columns come from the keys of the first line that parses
// (none when it is {}), in the order they appear; later records render "" for
// a missing column and drop keys that are not columns.
package logfile

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/logger"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// maxLineSize bounds a single record. Longer lines are skipped.
const maxLineSize = 4 * 1024 * 1024

// Table is the tabular form of one file.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether there is nothing to tabulate. That is the case when
// no record parsed or the first one had no keys.
func (t Table) Empty() bool {
	return len(t.Columns) == 0
}

// Reader lists and parses log files under a root directory.
type Reader struct {
	dir        string
	extensions []string
	log        logger.Logger
}

// NewReader creates a reader for files under dir whose extension is one of
// extensions. An empty extension list accepts every regular file.
func NewReader(dir string, extensions []string, log logger.Logger) *Reader {
	if log == nil {
		log = logger.Default()
	}
	return &Reader{
		dir:        dir,
		extensions: lo.Map(extensions, func(e string, _ int) string { return strings.ToLower(e) }),
		log:        log,
	}
}

// Dir returns the root directory.
func (r *Reader) Dir() string {
	return r.dir
}

// List returns matching files under the root, sorted by path.
func (r *Reader) List() ([]string, error) {
	files, err := ListFiles(r.dir, r.extensions)
	if err != nil {
		r.log.Warn("list %s failed: %v", r.dir, err)
	}
	return files, err
}

// Parse reads the file at path.
func (r *Reader) Parse(path string) (Table, error) {
	t, err := Parse(path)
	if err != nil {
		r.log.Warn("read %s failed: %v", path, err)
		return Table{}, err
	}
	r.log.Debug("parsed %s: %d columns, %d rows", path, len(t.Columns), len(t.Rows))
	return t, nil
}

// ListFiles walks dir and returns regular files with a matching extension.
// A missing dir yields no files and no error.
func ListFiles(dir string, extensions []string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	files := make([]string, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if len(extensions) > 0 && !lo.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFile,
			"Cannot list log files in "+dir,
			"Check files.dir in your config")
	}

	sort.Strings(files)
	return files, nil
}

// Parse opens path and parses it with ParseReader.
func Parse(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, errors.WrapWithCode(err, errors.ErrFile,
			"Cannot open "+path, "")
	}
	defer f.Close()

	t, err := ParseReader(f)
	if err != nil {
		return Table{}, errors.WrapWithCode(err, errors.ErrFile,
			"Cannot read "+path, "")
	}
	return t, nil
}

// ParseReader parses newline-delimited JSON from r. Only a failure of r
// itself is an error; bad lines, including ones over maxLineSize, are dropped.
func ParseReader(r io.Reader) (Table, error) {
	t := Table{Columns: []string{}, Rows: [][]string{}}
	haveColumns := false

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		raw, ok, err := readLine(br)
		if ok {
			if rec, valid := parseRecord(raw); valid {
				// The first record that parses fixes the columns, even {}.
				if !haveColumns {
					t.Columns = keys(rec)
					haveColumns = true
				}
				t.Rows = append(t.Rows, row(rec, t.Columns))
			}
		}
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return Table{}, err
		}
	}
}

// readLine returns the next line without its terminator. ok is false when
// the line is longer than maxLineSize; the rest of it is still consumed.
func readLine(br *bufio.Reader) (line []byte, ok bool, err error) {
	ok = true
	for {
		chunk, err := br.ReadSlice('\n')
		if ok {
			if len(line)+len(chunk) > maxLineSize+1 {
				ok = false
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if err != bufio.ErrBufferFull {
			return line, ok, err
		}
	}
}

// parseRecord accepts a line holding one JSON object.
func parseRecord(raw []byte) (gjson.Result, bool) {
	line := strings.TrimSpace(string(raw))
	if line == "" || !gjson.Valid(line) {
		return gjson.Result{}, false
	}
	rec := gjson.Parse(line)
	return rec, rec.IsObject()
}

// keys returns the object's keys in document order, without duplicates.
func keys(rec gjson.Result) []string {
	var out []string
	rec.ForEach(func(k, _ gjson.Result) bool {
		out = append(out, k.String())
		return true
	})
	return lo.Uniq(out)
}

func row(rec gjson.Result, columns []string) []string {
	values := make(map[string]string, len(columns))
	rec.ForEach(func(k, v gjson.Result) bool {
		if _, seen := values[k.String()]; !seen {
			values[k.String()] = cell(v)
		}
		return true
	})
	return lo.Map(columns, func(c string, _ int) string { return values[c] })
}

// cell renders a value the way it reads in the file: strings unquoted,
// null as empty, nested values as compact JSON.
func cell(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String()
	default:
		return v.Raw
	}
}
