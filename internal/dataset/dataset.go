package dataset

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"scheduleboard/server/internal/models"
)

// Store holds the schedule records loaded once at startup. The records are
// never mutated after Load returns, so concurrent readers need no locking.
type Store struct {
	records  []models.Record
	source   string
	sheet    string
	loadedAt time.Time
}

// Load reads the sheet from the workbook at path. A missing file, sheet or
// column is a load failure; unparsable cells only blank their field.
func Load(path, sheet string, logger *logrus.Logger) (*Store, error) {
	logger = ensureLogger(logger)

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := parseWorkbook(f, sheet, logger)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"file":  path,
		"sheet": sheet,
	}).Info("Loaded schedule dataset")

	return &Store{
		records:  records,
		source:   path,
		sheet:    sheet,
		loadedAt: time.Now(),
	}, nil
}

// NewStore wraps already parsed records.
func NewStore(records []models.Record, source, sheet string) *Store {
	if records == nil {
		records = []models.Record{}
	}
	return &Store{
		records:  records,
		source:   source,
		sheet:    sheet,
		loadedAt: time.Now(),
	}
}

// Records returns the cached table. Every call returns the same slice;
// callers must treat it as read-only.
func (s *Store) Records() []models.Record {
	return s.records
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Source() string {
	return s.source
}

func (s *Store) Sheet() string {
	return s.sheet
}

func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

func ensureLogger(logger *logrus.Logger) *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return logger
}
