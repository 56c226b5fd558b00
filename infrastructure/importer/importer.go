// Package importer ingests the Joy of Painting dataset CSV files into the
// catalog. The dataset ships as three files: the colors-used sheet (one row
// per episode with the palette as a bracketed list), the subject-matter
// sheet, and the episode-dates sheet joined by painting title.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/easelhq/easel/application/service"
	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/persistence"
	"github.com/easelhq/easel/internal/database"
)

// Dataset file names as published.
const (
	ColorsUsedFile    = "The Joy Of Painting - Colors Used.csv"
	SubjectMatterFile = "The Joy Of Painting - Subject Matter.csv"
	EpisodeDatesFile  = "The Joy Of Painting - Episode Dates.csv"
)

// Summary reports what an import run created. Re-running against the same
// dataset yields all zeros except Linked counts stay stable.
type Summary struct {
	Episodes       int
	Colors         int
	SubjectMatters int
	ColorLinks     int
	SubjectLinks   int
	SkippedRows    int
}

// Importer loads the dataset CSV files into the catalog. Imports are
// idempotent: episodes dedupe on (season, episode), colors and subjects on
// name, links on the join pair.
type Importer struct {
	episodes *service.Episode
	colors   *service.Color
	subjects *service.SubjectMatter
	logger   *slog.Logger
}

// New creates an Importer backed by the given database.
func New(db database.Database, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		episodes: service.NewEpisode(persistence.NewEpisodeStore(db), logger),
		colors:   service.NewColor(persistence.NewColorStore(db), logger),
		subjects: service.NewSubjectMatter(persistence.NewSubjectMatterStore(db), logger),
		logger:   logger,
	}
}

// Run imports the dataset from dir and returns a summary of what was created.
func (i *Importer) Run(ctx context.Context, dir string) (Summary, error) {
	var summary Summary

	colorRows, err := readRecords(filepath.Join(dir, ColorsUsedFile))
	if err != nil {
		return summary, fmt.Errorf("read colors-used file: %w", err)
	}
	dates, err := i.readDates(filepath.Join(dir, EpisodeDatesFile))
	if err != nil {
		return summary, fmt.Errorf("read episode-dates file: %w", err)
	}

	if err := i.importEpisodes(ctx, colorRows, dates, &summary); err != nil {
		return summary, err
	}
	if err := i.importPalettes(ctx, colorRows, &summary); err != nil {
		return summary, err
	}

	subjectRows, err := readRecords(filepath.Join(dir, SubjectMatterFile))
	if err != nil {
		return summary, fmt.Errorf("read subject-matter file: %w", err)
	}
	if err := i.importSubjects(ctx, subjectRows, &summary); err != nil {
		return summary, err
	}

	i.logger.Info("import finished",
		slog.Int("episodes", summary.Episodes),
		slog.Int("colors", summary.Colors),
		slog.Int("subject_matters", summary.SubjectMatters),
		slog.Int("color_links", summary.ColorLinks),
		slog.Int("subject_links", summary.SubjectLinks),
		slog.Int("skipped_rows", summary.SkippedRows),
	)
	return summary, nil
}

func (i *Importer) importEpisodes(ctx context.Context, rows []record, dates map[string]time.Time, summary *Summary) error {
	for _, row := range rows {
		title := strings.TrimSpace(row.get("painting_title"))
		season, serr := strconv.Atoi(strings.TrimSpace(row.get("season")))
		number, nerr := strconv.Atoi(strings.TrimSpace(row.get("episode")))
		if title == "" || serr != nil || nerr != nil {
			summary.SkippedRows++
			i.logger.Warn("skipping malformed episode row", slog.Int("line", row.line))
			continue
		}

		params := service.EpisodeCreateParams{
			Title:         title,
			Season:        season,
			Number:        number,
			PaintingImage: strings.TrimSpace(row.get("img_src")),
			PaintingVideo: strings.TrimSpace(row.get("youtube_src")),
		}
		if aired, ok := dates[title]; ok {
			params.AirDate = &aired
		}

		_, created, err := i.episodes.Add(ctx, params)
		if err != nil {
			return fmt.Errorf("import episode %q: %w", title, err)
		}
		if created {
			summary.Episodes++
		}
	}
	return nil
}

func (i *Importer) importPalettes(ctx context.Context, rows []record, summary *Summary) error {
	for _, row := range rows {
		season, serr := strconv.Atoi(strings.TrimSpace(row.get("season")))
		number, nerr := strconv.Atoi(strings.TrimSpace(row.get("episode")))
		if serr != nil || nerr != nil {
			continue
		}
		ep, err := i.episodes.Get(ctx,
			catalog.WithSeason(season),
			catalog.WithEpisodeNumber(number),
		)
		if err != nil {
			return fmt.Errorf("find episode S%02dE%02d: %w", season, number, err)
		}

		names := parseList(row.get("colors"))
		hexes := parseList(row.get("color_hex"))
		for idx, name := range names {
			hex := ""
			if idx < len(hexes) {
				hex = hexes[idx]
			}
			color, created, err := i.colors.Add(ctx, name, hex)
			if err != nil {
				return fmt.Errorf("import color %q: %w", name, err)
			}
			if created {
				summary.Colors++
			}

			switch err := i.episodes.AddColor(ctx, ep.ID(), color.ID()); {
			case err == nil:
				summary.ColorLinks++
			case isDuplicateLink(err):
				// Re-run over an already imported dataset.
			default:
				return fmt.Errorf("link color %q to %s: %w", name, ep.Code(), err)
			}
		}
	}
	return nil
}

func (i *Importer) importSubjects(ctx context.Context, rows []record, summary *Summary) error {
	for _, row := range rows {
		code := strings.TrimSpace(row.get("episode"))
		season, number, err := parseEpisodeCode(code)
		if err != nil {
			summary.SkippedRows++
			i.logger.Warn("skipping subject row with bad episode code",
				slog.Int("line", row.line), slog.String("code", code))
			continue
		}
		ep, err := i.episodes.Get(ctx,
			catalog.WithSeason(season),
			catalog.WithEpisodeNumber(number),
		)
		if err != nil {
			return fmt.Errorf("find episode %s: %w", code, err)
		}

		for _, name := range strings.Split(row.get("subjects"), ";") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			subject, created, err := i.subjects.Add(ctx, name)
			if err != nil {
				return fmt.Errorf("import subject %q: %w", name, err)
			}
			if created {
				summary.SubjectMatters++
			}

			switch err := i.episodes.AddSubjectMatter(ctx, ep.ID(), subject.ID()); {
			case err == nil:
				summary.SubjectLinks++
			case isDuplicateLink(err):
			default:
				return fmt.Errorf("link subject %q to %s: %w", name, code, err)
			}
		}
	}
	return nil
}

func (i *Importer) readDates(path string) (map[string]time.Time, error) {
	rows, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		title := strings.TrimSpace(row.get("title"))
		raw := strings.TrimSpace(row.get("date"))
		if title == "" || raw == "" {
			continue
		}
		aired, err := parseAirDate(raw)
		if err != nil {
			i.logger.Warn("skipping unparseable air date",
				slog.Int("line", row.line), slog.String("date", raw))
			continue
		}
		dates[title] = aired
	}
	return dates, nil
}

func isDuplicateLink(err error) bool {
	return errors.Is(err, catalog.ErrConflict)
}

// record is a CSV row keyed by lower-cased header name.
type record struct {
	fields map[string]string
	line   int
}

func (r record) get(column string) string {
	return r.fields[column]
}

func readRecords(path string) ([]record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for idx, name := range header {
		columns[idx] = strings.ToLower(strings.TrimSpace(name))
	}

	var rows []record
	for line := 2; ; line++ {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		fields := make(map[string]string, len(columns))
		for idx, value := range raw {
			if idx < len(columns) {
				fields[columns[idx]] = value
			}
		}
		rows = append(rows, record{fields: fields, line: line})
	}
	return rows, nil
}

// parseList parses the dataset's bracketed list cells, e.g.
// ['Titanium White', 'Phthalo Blue'], tolerating stray newlines and double
// quotes left over from the source spreadsheet.
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `'"`)
		part = strings.ReplaceAll(part, "\r", "")
		part = strings.ReplaceAll(part, "\n", "")
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// parseEpisodeCode parses codes of the form S01E01.
func parseEpisodeCode(code string) (season, number int, err error) {
	if _, err := fmt.Sscanf(strings.ToUpper(code), "S%dE%d", &season, &number); err != nil {
		return 0, 0, fmt.Errorf("bad episode code %q", code)
	}
	if season < 1 || number < 1 {
		return 0, 0, fmt.Errorf("bad episode code %q", code)
	}
	return season, number, nil
}

var airDateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
	"01/02/2006",
}

func parseAirDate(raw string) (time.Time, error) {
	// The published dates sheet wraps the date in parentheses after the
	// title, e.g. "(January 11, 1983)".
	raw = strings.Trim(raw, "() ")
	for _, layout := range airDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
