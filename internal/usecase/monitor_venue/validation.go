package monitor_venue

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Venue.ID) == "" {
		return fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, req.Date)
	}

	return nil
}
