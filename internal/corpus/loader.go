package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	appErr "github.com/sanjayganatra/satsang-qa-portal/internal/pkg/errors"

	"github.com/sanjayganatra/satsang-qa-portal/internal/model"
	"github.com/sanjayganatra/satsang-qa-portal/internal/textproc"
)

const minEmbedTextRunes = 10

// Loader fetches the corpus from the published sheet CSV export.
type Loader struct {
	client *http.Client
	url    string
}

func NewLoader(client *http.Client, url string) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, url: url}
}

// Load fetches and parses the sheet. A missing Question column is a
// DataLoadError; the other columns default to empty strings. Rows whose
// cleaned embed text is shorter than 10 runes are dropped.
func (l *Loader) Load(ctx context.Context) ([]*model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", appErr.ErrDataLoad, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch sheet: %v", appErr.ErrDataLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch sheet: status %d", appErr.ErrDataLoad, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", appErr.ErrDataLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", appErr.ErrDataLoad)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	questionCol, ok := cols["Question"]
	if !ok {
		return nil, fmt.Errorf("%w: 'Question' column missing from sheet", appErr.ErrDataLoad)
	}

	field := func(row []string, col int, ok bool) string {
		if !ok || col >= len(row) {
			return ""
		}
		return row[col]
	}
	answerCol, hasAnswer := cols["Answer"]
	tqCol, hasTQ := cols["Translated Question"]
	taCol, hasTA := cols["Translated Answer"]

	records := make([]*model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := &model.Record{
			Question:           field(row, questionCol, true),
			Answer:             field(row, answerCol, hasAnswer),
			TranslatedQuestion: field(row, tqCol, hasTQ),
			TranslatedAnswer:   field(row, taCol, hasTA),
		}
		rec.CleanQuestion = textproc.Clean(rec.Question)
		rec.CleanTranslatedQuestion = textproc.Clean(rec.TranslatedQuestion)
		rec.CleanAnswer = textproc.Clean(rec.Answer)
		rec.EmbedText = strings.TrimSpace(rec.CleanQuestion + " " + rec.CleanTranslatedQuestion)
		rec.LexText = strings.TrimSpace(rec.CleanQuestion + " " + rec.CleanTranslatedQuestion + " " + rec.CleanAnswer)
		if utf8.RuneCountInString(rec.EmbedText) < minEmbedTextRunes {
			continue
		}
		rec.ID = len(records)
		records = append(records, rec)
	}
	return records, nil
}
