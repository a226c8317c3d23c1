package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/calendar"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// maxDashboardPoints bounds a single dashboard series.
const maxDashboardPoints = 3660

// ---------------------------------------------------------------------------
// ReportBuilder – read-side rollups
// ---------------------------------------------------------------------------

// CustomerFlowRow is one customer's position across all their investments.
type CustomerFlowRow struct {
	CustomerID       string
	NIC              string
	Name             string
	Investments      int
	TotalPrincipal   decimal.Decimal
	PrincipalPending decimal.Decimal
	MonthlyInterest  decimal.Decimal
	ArrearsInterest  decimal.Decimal
	InterestPaid     decimal.Decimal
	PrincipalPaid    decimal.Decimal
	TotalPaid        decimal.Decimal
	ArrearsMonths    int
	Status           valueobject.AccrualStatus
}

// BrokerFlowRow is one broker's commission position.
type BrokerFlowRow struct {
	BrokerID          string
	NIC               string
	Name              string
	Investments       int
	InterestCollected decimal.Decimal
	TotalCommission   decimal.Decimal
	Paid              decimal.Decimal
	Pending           decimal.Decimal
}

// AssetFlowRow is the payment status reported against one asset.
type AssetFlowRow struct {
	AssetID          string
	Name             string
	CustomerID       string
	InvestmentIDs    []string
	PrincipalPending decimal.Decimal
	ArrearsInterest  decimal.Decimal
	LastPaymentAt    time.Time
	Released         bool
	Status           valueobject.AssetFlowStatus
}

// DashboardPoint holds the sums for one time bucket.
type DashboardPoint struct {
	Key                string
	Start              time.Time
	Invested           decimal.Decimal
	CustomerPaid       decimal.Decimal
	InterestCollected  decimal.Decimal
	PrincipalCollected decimal.Decimal
	ExcessCollected    decimal.Decimal
	BrokerPaid         decimal.Decimal
	RealProfit         decimal.Decimal
}

// DashboardSeries is a contiguous run of buckets plus their totals.
type DashboardSeries struct {
	Bucket calendar.Bucket
	Points []DashboardPoint
	Totals DashboardPoint
}

// InvestmentStatement is the history view of one investment.
type InvestmentStatement struct {
	Investment model.Investment
	Accrual    Accrual
	Commission CommissionPosition
	// Payments are newest-first.
	Payments []model.CustomerPayment
}

// BrokerStatement is the history view of one broker.
type BrokerStatement struct {
	Summary CommissionSummary
	// Payments are newest-first.
	Payments  []model.BrokerPayment
	TotalPaid decimal.Decimal
}

// ReportBuilder rolls accruals and commissions up into flow tables,
// dashboards and histories. Figures leave it rounded to two places.
type ReportBuilder struct {
	accrual       *AccrualEngine
	commission    *CommissionEngine
	arrearsWindow int
}

// NewReportBuilder wires the builder. An asset whose investments have seen
// no payment for more than arrearsWindowDays is reported in arrears.
func NewReportBuilder(accrual *AccrualEngine, commission *CommissionEngine, arrearsWindowDays int) *ReportBuilder {
	return &ReportBuilder{
		accrual:       accrual,
		commission:    commission,
		arrearsWindow: arrearsWindowDays,
	}
}

// CustomerFlow builds one row per customer, including customers without
// investments.
func (b *ReportBuilder) CustomerFlow(customers []model.Customer, invs []model.Investment, now time.Time) []CustomerFlowRow {
	byCustomer := make(map[string][]model.Investment)
	for _, inv := range invs {
		byCustomer[inv.CustomerID()] = append(byCustomer[inv.CustomerID()], inv)
	}

	rows := make([]CustomerFlowRow, 0, len(customers))
	for _, c := range customers {
		row := b.CustomerPosition(byCustomer[c.ID()], now)
		row.CustomerID = c.ID()
		row.NIC = c.NIC().String()
		row.Name = c.Name()
		rows = append(rows, row)
	}
	return rows
}

// CustomerPosition rolls up one customer's investments.
func (b *ReportBuilder) CustomerPosition(invs []model.Investment, now time.Time) CustomerFlowRow {
	totals := b.accrual.Aggregate(b.accrual.ComputeAll(invs, now))

	principal, interestPaid, principalPaid, totalPaid := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, inv := range invs {
		principal = principal.Add(inv.Principal())
		interestPaid = interestPaid.Add(inv.InterestPaid())
		principalPaid = principalPaid.Add(inv.PrincipalPaid())
		totalPaid = totalPaid.Add(inv.TotalPaid())
	}

	row := CustomerFlowRow{
		Investments:      totals.Investments,
		TotalPrincipal:   money.Round2(principal),
		PrincipalPending: money.Round2(totals.PrincipalPending),
		MonthlyInterest:  money.Round2(totals.MonthlyInterest),
		ArrearsInterest:  money.Round2(totals.ArrearsInterest),
		InterestPaid:     money.Round2(interestPaid),
		PrincipalPaid:    money.Round2(principalPaid),
		TotalPaid:        money.Round2(totalPaid),
		ArrearsMonths:    totals.ArrearsMonths,
		Status:           totals.Status,
	}
	if len(invs) > 0 {
		row.CustomerID = invs[0].CustomerID()
	}
	return row
}

// BrokerFlow builds one row per broker.
func (b *ReportBuilder) BrokerFlow(brokers []model.Broker, invs []model.Investment) []BrokerFlowRow {
	byBroker := make(map[string][]model.Investment)
	for _, inv := range invs {
		byBroker[inv.BrokerID()] = append(byBroker[inv.BrokerID()], inv)
	}

	rows := make([]BrokerFlowRow, 0, len(brokers))
	for _, br := range brokers {
		own := byBroker[br.ID()]
		summary := b.commission.Summarize(own)
		collected := decimal.Zero
		for _, inv := range own {
			collected = collected.Add(inv.InterestPaid())
		}
		rows = append(rows, BrokerFlowRow{
			BrokerID:          br.ID(),
			NIC:               br.NIC().String(),
			Name:              br.Name(),
			Investments:       len(own),
			InterestCollected: money.Round2(collected),
			TotalCommission:   money.Round2(summary.TotalCommission),
			Paid:              money.Round2(summary.Paid),
			Pending:           money.Round2(summary.Pending),
		})
	}
	return rows
}

// AssetFlow derives a payment status for every asset from the investments
// that list it.
func (b *ReportBuilder) AssetFlow(assets []model.Asset, invs []model.Investment, now time.Time) []AssetFlowRow {
	byAsset := make(map[string][]model.Investment)
	for _, inv := range invs {
		for _, id := range inv.AssetIDs() {
			byAsset[id] = append(byAsset[id], inv)
		}
	}

	cutoff := now.AddDate(0, 0, -b.arrearsWindow)
	rows := make([]AssetFlowRow, 0, len(assets))
	for _, a := range assets {
		row := AssetFlowRow{
			AssetID:          a.ID(),
			Name:             a.Name(),
			CustomerID:       a.CustomerID(),
			PrincipalPending: decimal.Zero,
			ArrearsInterest:  decimal.Zero,
			Released:         a.IsReleased(),
		}
		for _, inv := range byAsset[a.ID()] {
			acc := b.accrual.Compute(inv, now)
			row.InvestmentIDs = append(row.InvestmentIDs, inv.ID())
			row.PrincipalPending = row.PrincipalPending.Add(acc.PrincipalPending)
			row.ArrearsInterest = row.ArrearsInterest.Add(acc.ArrearsInterest)
			if inv.LastPaymentAt().After(row.LastPaymentAt) {
				row.LastPaymentAt = inv.LastPaymentAt()
			}
		}

		pending := row.PrincipalPending.Add(row.ArrearsInterest)
		switch {
		case !pending.IsPositive():
			row.Status = valueobject.AssetFlowFinished
		case row.LastPaymentAt.IsZero() || row.LastPaymentAt.Before(cutoff):
			row.Status = valueobject.AssetFlowArrears
		default:
			row.Status = valueobject.AssetFlowPending
		}
		row.PrincipalPending = money.Round2(row.PrincipalPending)
		row.ArrearsInterest = money.Round2(row.ArrearsInterest)
		rows = append(rows, row)
	}
	return rows
}

// ValidateDashboardRange rejects a missing bucket, an empty or inverted
// [from, to) window and a window spanning more than maxDashboardPoints
// buckets.
func (b *ReportBuilder) ValidateDashboardRange(bucket calendar.Bucket, from, to time.Time) error {
	if bucket.IsZero() {
		return fmt.Errorf("%w: dashboard bucket is required", valueobject.ErrValidation)
	}
	if !to.After(from) {
		return fmt.Errorf("%w: dashboard range end must be after start", valueobject.ErrValidation)
	}
	n := 0
	for t := bucket.Start(from); t.Before(to); t = bucket.Next(t) {
		if n == maxDashboardPoints {
			return fmt.Errorf("%w: dashboard range exceeds %d %s buckets",
				valueobject.ErrValidation, maxDashboardPoints, bucket)
		}
		n++
	}
	return nil
}

// Dashboard buckets money movements between from (inclusive) and to
// (exclusive) in from's location. Investments count on their start date.
// Real profit is interest collected minus commission paid out.
func (b *ReportBuilder) Dashboard(
	bucket calendar.Bucket,
	from, to time.Time,
	invs []model.Investment,
	customerPayments []model.CustomerPayment,
	brokerPayments []model.BrokerPayment,
) (DashboardSeries, error) {
	if err := b.ValidateDashboardRange(bucket, from, to); err != nil {
		return DashboardSeries{}, err
	}

	loc := from.Location()
	series := DashboardSeries{Bucket: bucket}
	index := make(map[string]int)
	for t := bucket.Start(from); t.Before(to); t = bucket.Next(t) {
		key := bucket.Key(t)
		index[key] = len(series.Points)
		series.Points = append(series.Points, emptyPoint(key, t))
	}

	at := func(t time.Time) *DashboardPoint {
		if t.Before(from) || !t.Before(to) {
			return nil
		}
		i, ok := index[bucket.Key(t.In(loc))]
		if !ok {
			return nil
		}
		return &series.Points[i]
	}

	for _, inv := range invs {
		if p := at(inv.StartDate()); p != nil {
			p.Invested = p.Invested.Add(inv.Principal())
		}
	}
	for _, cp := range customerPayments {
		if p := at(cp.PaidAt()); p != nil {
			p.CustomerPaid = p.CustomerPaid.Add(cp.Amount())
			p.InterestCollected = p.InterestCollected.Add(cp.InterestPart())
			p.PrincipalCollected = p.PrincipalCollected.Add(cp.PrincipalPart())
			p.ExcessCollected = p.ExcessCollected.Add(cp.ExcessAmount())
		}
	}
	for _, bp := range brokerPayments {
		if p := at(bp.PaidAt()); p != nil {
			p.BrokerPaid = p.BrokerPaid.Add(bp.Amount())
		}
	}

	series.Totals = emptyPoint("total", bucket.Start(from))
	for i := range series.Points {
		p := &series.Points[i]
		p.RealProfit = p.InterestCollected.Sub(p.BrokerPaid)

		series.Totals.Invested = series.Totals.Invested.Add(p.Invested)
		series.Totals.CustomerPaid = series.Totals.CustomerPaid.Add(p.CustomerPaid)
		series.Totals.InterestCollected = series.Totals.InterestCollected.Add(p.InterestCollected)
		series.Totals.PrincipalCollected = series.Totals.PrincipalCollected.Add(p.PrincipalCollected)
		series.Totals.ExcessCollected = series.Totals.ExcessCollected.Add(p.ExcessCollected)
		series.Totals.BrokerPaid = series.Totals.BrokerPaid.Add(p.BrokerPaid)
		series.Totals.RealProfit = series.Totals.RealProfit.Add(p.RealProfit)

		roundPoint(p)
	}
	roundPoint(&series.Totals)

	return series, nil
}

// Statement assembles the history view of one investment.
func (b *ReportBuilder) Statement(inv model.Investment, payments []model.CustomerPayment, now time.Time) InvestmentStatement {
	return InvestmentStatement{
		Investment: inv,
		Accrual:    b.accrual.Compute(inv, now),
		Commission: b.commission.Position(inv),
		Payments:   newestFirstCustomer(payments),
	}
}

// BrokerHistory assembles the history view of one broker.
func (b *ReportBuilder) BrokerHistory(invs []model.Investment, payments []model.BrokerPayment) BrokerStatement {
	st := BrokerStatement{
		Summary:   b.commission.Summarize(invs),
		Payments:  newestFirstBroker(payments),
		TotalPaid: decimal.Zero,
	}
	for _, p := range payments {
		st.TotalPaid = st.TotalPaid.Add(p.Amount())
	}
	return st
}

func emptyPoint(key string, start time.Time) DashboardPoint {
	return DashboardPoint{
		Key:                key,
		Start:              start,
		Invested:           decimal.Zero,
		CustomerPaid:       decimal.Zero,
		InterestCollected:  decimal.Zero,
		PrincipalCollected: decimal.Zero,
		ExcessCollected:    decimal.Zero,
		BrokerPaid:         decimal.Zero,
		RealProfit:         decimal.Zero,
	}
}

func roundPoint(p *DashboardPoint) {
	p.Invested = money.Round2(p.Invested)
	p.CustomerPaid = money.Round2(p.CustomerPaid)
	p.InterestCollected = money.Round2(p.InterestCollected)
	p.PrincipalCollected = money.Round2(p.PrincipalCollected)
	p.ExcessCollected = money.Round2(p.ExcessCollected)
	p.BrokerPaid = money.Round2(p.BrokerPaid)
	p.RealProfit = money.Round2(p.RealProfit)
}

func newestFirstCustomer(in []model.CustomerPayment) []model.CustomerPayment {
	out := make([]model.CustomerPayment, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt().After(out[j].PaidAt()) })
	return out
}

func newestFirstBroker(in []model.BrokerPayment) []model.BrokerPayment {
	out := make([]model.BrokerPayment, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt().After(out[j].PaidAt()) })
	return out
}
