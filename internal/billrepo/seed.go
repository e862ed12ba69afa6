package billrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/randompkg"
)

type meterRange struct {
	consumptionMin, consumptionMax int
	rateMin, rateMax               float64
	feeMin, feeMax                 float64
}

var meterRanges = map[domain.BillType]meterRange{
	domain.BillTypeElectricity: {100, 1000, 0.5, 2.0, 5, 20},
	domain.BillTypeWater:       {5, 50, 2.0, 5.0, 5, 15},
	domain.BillTypeGas:         {10, 100, 1.0, 3.0, 5, 15},
}

// RandomBill generates a synthetic unpaid bill for the n-th customer.
func RandomBill(n int) domain.Bill {
	billType := domain.BillTypes[randompkg.Intn(len(domain.BillTypes))]
	mr := meterRanges[billType]

	return domain.Bill{
		Type:          billType,
		AccountNumber: randompkg.Digits(10),
		CustomerName:  fmt.Sprintf("Customer %d", n),
		Amount:        randompkg.DecimalBetween(50, 500, 2),
		DueDate:       time.Now().UTC().Add(time.Duration(randompkg.IntBetween(86400, 2592000)) * time.Second),
		Details: domain.MeterDetails{
			MeterNumber: randompkg.Digits(8),
			Consumption: randompkg.IntBetween(mr.consumptionMin, mr.consumptionMax),
			Rate:        randompkg.DecimalBetween(mr.rateMin, mr.rateMax, 2),
			ServiceFee:  randompkg.DecimalBetween(mr.feeMin, mr.feeMax, 2),
		},
	}
}

// Seed populates the registry with n synthetic bills.
func (r *RepoMem) Seed(ctx context.Context, n int) error {
	for i := 1; i <= n; i++ {
		if _, err := r.Add(ctx, RandomBill(i)); err != nil {
			return err
		}
	}

	return nil
}
