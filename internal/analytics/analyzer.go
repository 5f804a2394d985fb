package analytics

import (
	"log/slog"

	apperrors "ottpulse/internal/errors"
	"ottpulse/pkg/contracts/domain"
)

// Analyzer runs aggregation queries over normalized catalog tables. It holds
// no table state itself; every method is a pure function of its arguments.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer with the given logger.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// checkFilter validates a filter struct, converting validator errors into
// the application error taxonomy.
func checkFilter(filter interface{}) error {
	if err := validate.Struct(filter); err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "invalid filter", err)
	}
	return nil
}

// matchesType reports whether a row passes a content-type filter; an empty
// filter admits everything.
func matchesType(t domain.Title, contentType domain.ContentType) bool {
	return contentType == "" || t.ContentType == contentType
}

// platformSet builds a membership set; nil input means "all platforms" and
// yields a nil set, which inPlatformSet treats as always-true.
func platformSet(platforms []domain.Platform) map[domain.Platform]bool {
	if len(platforms) == 0 {
		return nil
	}
	set := make(map[domain.Platform]bool, len(platforms))
	for _, p := range platforms {
		set[p] = true
	}
	return set
}

func inPlatformSet(set map[domain.Platform]bool, p domain.Platform) bool {
	return set == nil || set[p]
}
