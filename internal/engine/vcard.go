package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/pet-reminder/internal/config"
)

// ErrNoSource is returned when neither a file nor a URL was given.
var ErrNoSource = errors.New(config.ErrImportSourceArg)

// ImportSource selects where vCards are read from. Path wins over URL.
type ImportSource struct {
	Path string // local .vcf file
	URL  string // CardDAV or WebDAV URL
	User string // HTTP Basic Auth Username
	Pass string // HTTP Basic Auth Password
}

// ImportResult summarizes a vCard decoding pass.
type ImportResult struct {
	Records []BirthdayRecord
	Cards   int // cards decoded successfully
	Skipped int // cards without a usable name or full birth date
}

// Importer turns address books into birthday records.
type Importer struct {
	Fetcher VCardFetcher // Interface for network abstraction.
}

// Import opens the source and decodes every card with a full BDAY.
func (im *Importer) Import(ctx context.Context, src ImportSource) (ImportResult, error) {
	start := time.Now()

	reader, err := im.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return ImportResult{}, ctx.Err()
		}
		return ImportResult{}, fmt.Errorf("%s: %w", config.ErrImportOpen, err)
	}
	// Best effort close. Errors in Close() for read-only streams are rarely actionable here.
	defer func() { _ = reader.Close() }()

	res, err := ParseVCards(ctx, reader)
	if err == nil {
		slog.Info(config.MsgImportDone,
			config.LogKeyComponent, config.CompEngine,
			slog.Group(config.LogKeyStats,
				slog.Int(config.LogKeyTotal, res.Cards),
				slog.Int(config.LogKeyFound, len(res.Records)),
				slog.Int(config.LogKeySkipped, res.Skipped),
			),
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	}
	return res, err
}

func (im *Importer) open(ctx context.Context, src ImportSource) (io.ReadCloser, error) {
	switch {
	case src.Path != "":
		return os.Open(src.Path)
	case src.URL != "":
		fetcher := im.Fetcher
		if fetcher == nil {
			fetcher = NewHTTPFetcher()
		}
		return fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	default:
		return nil, ErrNoSource
	}
}

// ParseVCards decodes a vCard stream. Malformed cards, cards without BDAY and
// cards whose BDAY lacks a year are skipped; the stream is read to the end.
func ParseVCards(ctx context.Context, r io.Reader) (ImportResult, error) {
	var res ImportResult
	decoder := vcard.NewDecoder(r)

	for {
		if ctx.Err() != nil {
			return ImportResult{}, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card usually desynchronizes the decoder; stop and keep what we have.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			if len(res.Records) == 0 && res.Cards == 0 {
				return ImportResult{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			break
		}
		res.Cards++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			res.Skipped++
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			res.Skipped++
			continue
		}
		if !yearKnown {
			slog.Debug(config.MsgSkippedNoYear,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			res.Skipped++
			continue
		}

		res.Records = append(res.Records, BirthdayRecord{
			Name:  cardName(card),
			Day:   birthDate.Day(),
			Month: int(birthDate.Month()),
			Year:  birthDate.Year(),
		})
	}
	return res, nil
}

// cardName prefers FN (Formatted) over N (Structured).
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		parts := strings.Fields(strings.Join([]string{n.GivenName, n.AdditionalName, n.FamilyName}, " "))
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return config.FallbackName
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.LeapReferenceYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

// MergeBirthdays appends incoming records that are not already present
// (same name and date) to existing. Order of existing records is preserved.
func MergeBirthdays(existing, incoming []BirthdayRecord) (merged []BirthdayRecord, added, duplicates int) {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged = make([]BirthdayRecord, 0, len(existing)+len(incoming))

	for _, b := range existing {
		seen[duplicateKey(b)] = true
		merged = append(merged, b)
	}
	for _, b := range incoming {
		key := duplicateKey(b)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true
		merged = append(merged, b)
		added++
	}
	return merged, added, duplicates
}

func duplicateKey(b BirthdayRecord) string {
	return fmt.Sprintf(config.FormatDuplicateKey, strings.ToLower(strings.TrimSpace(b.Name)), b.Year, b.Month, b.Day)
}
