// Package records reads dated records (maktoob letters, weight slips,
// purchases) from the HSMIS REST API and normalizes their dates.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/go-playground/validator/v10"
)

// Record is one dated back-end record. Date is canonical YYYY-MM-DD or ""
// when the record carries no usable date.
type Record struct {
	ID    string `validate:"required,max=128"`
	Kind  string `validate:"required,max=64"`
	Title string `validate:"required,max=512"`
	Date  string `validate:"omitempty,datetime=2006-01-02"`
}

// Dated reports whether the record has a usable date.
func (r Record) Dated() bool {
	return r.Date != ""
}

// wireRecord is the shape the back end serializes. Listings differ between
// kinds, so several field names are accepted for the title and the date.
type wireRecord struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Name        string          `json:"name"`
	Subject     string          `json:"subject"`
	Date        any             `json:"date"`
	MaktoobDate any             `json:"maktoob_date"`
	CreatedAt   any             `json:"created_at"`
}

var validate = validator.New()

// Decode parses a listing of one record kind. Both a bare JSON array and an
// envelope of the form {"data": [...]} are accepted. Records failing
// validation are skipped with a warning; a record whose date cannot be
// normalized is kept undated.
func Decode(r io.Reader, kind string) ([]Record, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecordsDecode, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRecordsDecode, err)
		}
		raw = envelope[config.JSONDataKey]
	}

	var wire []wireRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecordsDecode, err)
	}

	log := slog.With(slog.String(config.LogKeyComponent, config.CompRecords))

	out := make([]Record, 0, len(wire))
	for _, w := range wire {
		rec := Record{
			ID:    rawID(w.ID),
			Kind:  kind,
			Title: firstNonEmpty(w.Title, w.Name, w.Subject, config.FallbackTitle),
			Date:  firstDate(w.Date, w.MaktoobDate, w.CreatedAt),
		}

		if rec.Date != "" && validate.Var(rec.Date, "datetime="+config.DateLayoutCanonical) != nil {
			log.Warn(config.MsgUndatedRecord,
				slog.String(config.LogKeyKind, kind),
				slog.String(config.LogKeyID, rec.ID),
				slog.String(config.LogKeyDate, rec.Date),
			)
			rec.Date = ""
		}

		if err := validate.Struct(rec); err != nil {
			log.Warn(config.MsgSkippedRecord,
				slog.String(config.LogKeyKind, kind),
				slog.String(config.LogKeyID, rec.ID),
				slog.Any(config.LogKeyError, err),
			)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// rawID renders a JSON id (string or number) as text.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

// firstDate returns the first candidate that sanitizes to a canonical date.
func firstDate(candidates ...any) string {
	for _, c := range candidates {
		if s := calendar.SanitizeGregorian(c); s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
