package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineagemap/pkg/family"
)

// Decode parses a family document and logs the records it had to skip.
func Decode(data []byte, logger *log.Logger) (*family.Document, error) {
	doc, warnings, err := family.Decode(data)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		for _, w := range warnings {
			logger.Warn("skipped record", "detail", w)
		}
	}
	return doc, nil
}
