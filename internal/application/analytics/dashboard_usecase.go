// Package analytics contiene los casos de uso para reportes de negocio:
// dashboard, estados de cuenta, libros de tesorería, existencias y conciliación.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: ReportRepository (consultas read-only sobre los libros).
type DashboardUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reports repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, now: time.Now}
}

type decimalResult struct {
	value decimal.Decimal
	err   error
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
// Cada indicador es una consulta independiente; se lanzan en paralelo y se esperan todas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	run := func(fn func() (decimal.Decimal, error)) <-chan decimalResult {
		ch := make(chan decimalResult, 1)
		go func() {
			v, err := fn()
			ch <- decimalResult{v, err}
		}()
		return ch
	}
	partyTotal := func(kind string) func() (decimal.Decimal, error) {
		return func() (decimal.Decimal, error) {
			opening, err := uc.reports.OpeningBalanceTotal(ctx, companyID, kind)
			if err != nil {
				return decimal.Zero, err
			}
			balances, err := uc.reports.PartyBalances(ctx, companyID, kind, nil)
			if err != nil {
				return decimal.Zero, err
			}
			for _, b := range balances {
				opening = opening.Add(b)
			}
			return opening, nil
		}
	}

	todaySalesCh := run(func() (decimal.Decimal, error) {
		return uc.reports.InvoiceTotal(ctx, companyID, entity.InvoiceKindSales, todayStart, todayEnd)
	})
	monthSalesCh := run(func() (decimal.Decimal, error) {
		return uc.reports.InvoiceTotal(ctx, companyID, entity.InvoiceKindSales, monthStart, todayEnd)
	})
	monthPurchasesCh := run(func() (decimal.Decimal, error) {
		return uc.reports.InvoiceTotal(ctx, companyID, entity.InvoiceKindPurchase, monthStart, todayEnd)
	})
	salesReturnsCh := run(func() (decimal.Decimal, error) {
		return uc.reports.ReturnTotal(ctx, companyID, entity.InvoiceKindSales, monthStart, todayEnd)
	})
	purchaseReturnsCh := run(func() (decimal.Decimal, error) {
		return uc.reports.ReturnTotal(ctx, companyID, entity.InvoiceKindPurchase, monthStart, todayEnd)
	})
	safesCh := run(func() (decimal.Decimal, error) {
		return uc.reports.AccountBalanceTotal(ctx, companyID, entity.AccountKindSafe)
	})
	banksCh := run(func() (decimal.Decimal, error) {
		return uc.reports.AccountBalanceTotal(ctx, companyID, entity.AccountKindBank)
	})
	receivablesCh := run(partyTotal(entity.PartyKindCustomer))
	payablesCh := run(partyTotal(entity.PartyKindSupplier))

	type lowStockResult struct {
		count int
		err   error
	}
	type topResult struct {
		items []repository.TopProduct
		err   error
	}
	lowCh := make(chan lowStockResult, 1)
	topCh := make(chan topResult, 1)
	go func() {
		n, err := uc.reports.LowStockCount(ctx, companyID)
		lowCh <- lowStockResult{n, err}
	}()
	go func() {
		items, err := uc.reports.TopProducts(ctx, companyID, monthStart, todayEnd, dashboardTopProducts)
		topCh <- topResult{items, err}
	}()

	todaySales := <-todaySalesCh
	monthSales := <-monthSalesCh
	monthPurchases := <-monthPurchasesCh
	salesReturns := <-salesReturnsCh
	purchaseReturns := <-purchaseReturnsCh
	safes := <-safesCh
	banks := <-banksCh
	receivables := <-receivablesCh
	payables := <-payablesCh
	low := <-lowCh
	top := <-topCh

	for _, r := range []struct {
		name string
		err  error
	}{
		{"ventas de hoy", todaySales.err},
		{"ventas del mes", monthSales.err},
		{"compras del mes", monthPurchases.err},
		{"devoluciones de venta", salesReturns.err},
		{"devoluciones de compra", purchaseReturns.err},
		{"saldo en cajas", safes.err},
		{"saldo en bancos", banks.err},
		{"cartera", receivables.err},
		{"cuentas por pagar", payables.err},
		{"stock bajo", low.err},
		{"top productos", top.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.name, r.err)
		}
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.items))
	for _, p := range top.items {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Code:      p.Code,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   p.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:           todaySales.value.Round(2),
		MonthSales:           monthSales.value.Round(2),
		MonthPurchases:       monthPurchases.value.Round(2),
		MonthSalesReturns:    salesReturns.value.Round(2),
		MonthPurchaseReturns: purchaseReturns.value.Round(2),
		CashInSafes:          safes.value.Round(2),
		CashInBanks:          banks.value.Round(2),
		Receivables:          receivables.value.Round(2),
		Payables:             payables.value.Round(2),
		LowStockCount:        low.count,
		TopProducts:          topProducts,
		DateLabel:            monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
