package agreement

import (
	"time"

	"github.com/google/uuid"
)

// BuildSchedule generates the ordered installment sequence for an
// agreement: count installments of totalValue/count each, due monthly
// starting at startDate. The division is linear; the residual from
// non-terminating divisions is not redistributed onto the last
// installment, so the sum matches the total only within floating-point
// tolerance.
func BuildSchedule(agreementID uuid.UUID, totalValue float64, count int, startDate time.Time) ([]*Installment, error) {
	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}
	if totalValue < 0 {
		return nil, ErrNegativeTotalValue
	}

	perValue := totalValue / float64(count)
	start := normalizeDate(startDate)

	installments := make([]*Installment, 0, count)
	for i := 0; i < count; i++ {
		installments = append(installments, &Installment{
			ID:          uuid.New(),
			AgreementID: agreementID,
			Sequence:    i + 1,
			Value:       perValue,
			DueDate:     addMonths(start, i),
		})
	}

	return installments, nil
}

// addMonths advances t by n calendar months, keeping the day of month
// and clamping to the last day when the target month is shorter
// (Jan 31 -> Feb 28/29). Each due date is computed from the start date,
// not chained from the previous one, so Jan 31 -> Feb 28 -> Mar 31.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// normalizeDate truncates a timestamp to a UTC calendar date
func normalizeDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
