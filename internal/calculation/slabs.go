package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateSlabs builds the ordered brackets for a tax-free threshold and a
// rate schedule. The first bracket is the 0% band [0, threshold); each band
// of the schedule follows cumulatively and the final bracket is unbounded.
// A negative threshold is treated as zero.
func GenerateSlabs(threshold decimal.Decimal, schedule domain.RateSchedule) []domain.TaxBracket {
	threshold = NonNegative(threshold)

	slabs := make([]domain.TaxBracket, 0, len(schedule.Bands)+2)
	slabs = append(slabs, domain.TaxBracket{
		Label:       fmt.Sprintf("First Tk%s lakh", LakhString(threshold)),
		LowerBound:  decimal.Zero,
		UpperBound:  threshold,
		RatePercent: decimal.Zero,
	})

	lower := threshold
	for _, band := range schedule.Bands {
		upper := lower.Add(band.Width)
		slabs = append(slabs, domain.TaxBracket{
			Label: fmt.Sprintf("Next Tk%s lakh [%s-%s lakh]",
				LakhString(band.Width), LakhString(lower), LakhString(upper)),
			LowerBound:  lower,
			UpperBound:  upper,
			RatePercent: band.RatePercent,
		})
		lower = upper
	}

	slabs = append(slabs, domain.TaxBracket{
		Label:       fmt.Sprintf("Remaining [above %s lakh]", LakhString(lower)),
		LowerBound:  lower,
		Unbounded:   true,
		RatePercent: schedule.TopRatePercent,
	})
	return slabs
}
