package jar

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/dmitrymomot/cookiejar/pkg/logger"
)

const netscapeHeader = "# Netscape HTTP Cookie File\n"

// FileStore keeps records in a Netscape cookies.txt file.
//
// Every Save and Delete rewrites the whole file through a temporary file
// and a rename. Lines that do not parse are skipped on load and dropped on
// the next rewrite.
type FileStore struct {
	fs   afero.Fs
	log  *slog.Logger
	path string
	mu   sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileLogger sets the logger used for skipped lines.
func WithFileLogger(log *slog.Logger) FileOption {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewFileStore creates a FileStore for path on fsys.
// The file is created on the first write.
func NewFileStore(fsys afero.Fs, path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		fs:   fsys,
		path: path,
		log:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) Load(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *FileStore) Save(ctx context.Context, rec Record) error {
	if err := checkNetscapeRecord(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	key := rec.Key()
	replaced := false
	for i := range records {
		if records[i].Key() == key {
			rec.Created = records[i].Created
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	return s.write(records)
}

func (s *FileStore) Delete(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, r := range records {
		if r.Key() != key {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	return s.write(kept)
}

func (s *FileStore) load(ctx context.Context) ([]Record, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("jar: read %s: %w", s.path, err)
	}

	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#HttpOnly_") {
			line = line[len("#HttpOnly_"):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseNetscapeLine(line)
		if err != nil {
			s.log.WarnContext(ctx, "skipping malformed cookie file line",
				slog.String("path", s.path),
				slog.Int("line", n),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("jar: scan %s: %w", s.path, err)
	}

	return records, nil
}

func (s *FileStore) write(records []Record) error {
	var buf bytes.Buffer
	buf.WriteString(netscapeHeader)
	for _, r := range records {
		buf.WriteString(formatNetscapeLine(r))
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("jar: write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("jar: rename %s: %w", tmp, err)
	}
	return nil
}

// parseNetscapeLine reads the seven tab-separated fields:
// domain, include-subdomains, path, secure, expiry, name, value.
func parseNetscapeLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 7 {
		return Record{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	expiry, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid expiry %q", fields[4])
	}

	rec := Record{
		Domain: strings.ToLower(strings.TrimPrefix(fields[0], ".")),
		Path:   fields[2],
		Secure: strings.EqualFold(fields[3], "TRUE"),
		Name:   fields[5],
		Value:  fields[6],
	}
	if expiry > 0 {
		rec.Expires = time.Unix(expiry, 0)
	}
	return rec, nil
}

func formatNetscapeLine(r Record) string {
	domain, sub := "", "FALSE"
	if r.Domain != "" {
		domain, sub = "."+r.Domain, "TRUE"
	}

	return strings.Join([]string{
		domain,
		sub,
		r.Path,
		strings.ToUpper(strconv.FormatBool(r.Secure)),
		strconv.FormatInt(unixOrZero(r.Expires), 10),
		r.Name,
		r.Value,
	}, "\t")
}

func checkNetscapeRecord(r Record) error {
	for _, f := range []string{r.Name, r.Value, r.Domain, r.Path} {
		if strings.ContainsAny(f, "\t\r\n") {
			return errors.Join(ErrInvalidRecord, errors.New("jar: tab or newline in field"))
		}
	}
	return nil
}

var _ Store = (*FileStore)(nil)
