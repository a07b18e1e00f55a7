package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatFolio constructs the quote folio string from components.
// Format: C{yymmdd}-{suffix}
func formatFolio(t time.Time, suffix int) string {
	return fmt.Sprintf("C%02d%02d%02d-%03d", t.Year()%100, int(t.Month()), t.Day(), suffix)
}

// GenerateFolio creates a folio for a new quote.
// Format: C{yymmdd}-{NNN}
// - yymmdd: creation date
// - NNN: random 3-digit suffix, regenerated on collision with an existing quote
func GenerateFolio(app *pocketbase.PocketBase, now time.Time) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000))
		if err != nil {
			return "", fmt.Errorf("folio suffix: %w", err)
		}

		folio := formatFolio(now, int(n.Int64()))

		existing, err := app.FindRecordsByFilter(
			"quotes",
			"folio = {:folio}",
			"",
			1,
			0,
			map[string]any{"folio": folio},
		)
		if err != nil || len(existing) == 0 {
			return folio, nil
		}
	}

	return "", fmt.Errorf("could not generate unique folio")
}
