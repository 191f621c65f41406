package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pscheid92/ratingpulse/internal/domain"
)

// csvHeader fixes the CSV column order for both writer and reader.
var csvHeader = []string{"id", "conversation_id", "rating", "feedback", "user_id", "metadata", "sentiment", "timestamp"}

// jsonDocument is the envelope for JSON exports.
type jsonDocument struct {
	Ratings []domain.Rating `json:"ratings"`
}

// WriteJSON writes the ratings as a JSON document to w.
func WriteJSON(w io.Writer, ratings []domain.Rating) error {
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(jsonDocument{Ratings: ratings}); err != nil {
		return fmt.Errorf("failed to encode ratings as JSON: %w", err)
	}
	return nil
}

// ReadJSON parses a JSON export back into a rating slice.
func ReadJSON(r io.Reader) ([]domain.Rating, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode ratings JSON: %w", err)
	}
	return doc.Ratings, nil
}

// WriteCSV writes the ratings as CSV to w, metadata JSON-stringified
// into one column. Timestamps use RFC 3339 in UTC.
func WriteCSV(w io.Writer, ratings []domain.Rating) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range ratings {
		metadata := ""
		if len(r.Metadata) > 0 {
			encoded, err := json.Marshal(r.Metadata)
			if err != nil {
				return fmt.Errorf("failed to encode metadata for rating %d: %w", r.ID, err)
			}
			metadata = string(encoded)
		}

		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.ConversationID,
			strconv.Itoa(r.Rating),
			r.Feedback,
			r.UserID,
			metadata,
			string(r.Sentiment),
			r.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for rating %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ReadCSV parses a CSV export back into a rating slice. The header row
// is required and must match the export layout.
func ReadCSV(r io.Reader) ([]domain.Rating, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected CSV header: got %d columns, want %d", len(header), len(csvHeader))
	}

	var ratings []domain.Rating
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		rating, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV line %d: %w", line, err)
		}
		ratings = append(ratings, *rating)
	}

	return ratings, nil
}

func parseCSVRecord(record []string) (*domain.Rating, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", record[0], err)
	}

	stars, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q: %w", record[2], err)
	}

	var metadata map[string]any
	if record[5] != "" {
		if err := json.Unmarshal([]byte(record[5]), &metadata); err != nil {
			return nil, fmt.Errorf("invalid metadata %q: %w", record[5], err)
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, record[7])
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", record[7], err)
	}

	return &domain.Rating{
		ID:             id,
		ConversationID: record[1],
		Rating:         stars,
		Feedback:       record[3],
		UserID:         record[4],
		Metadata:       metadata,
		Sentiment:      domain.Sentiment(record[6]),
		CreatedAt:      createdAt,
	}, nil
}
