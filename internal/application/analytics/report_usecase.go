package analytics

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SpreadsheetExporter genera libros .xlsx a partir de los reportes (implementado en infrastructure/excel).
type SpreadsheetExporter interface {
	StockReport(report *dto.StockReportDTO) ([]byte, error)
	PartyStatement(statement *dto.PartyStatementDTO) ([]byte, error)
}

// ReportUseCase reportes calculados al vuelo agrupando filas de los libros.
type ReportUseCase struct {
	store    repository.Store
	exporter SpreadsheetExporter
}

// NewReportUseCase construye el caso de uso. exporter puede ser nil si no se exporta a Excel.
func NewReportUseCase(store repository.Store, exporter SpreadsheetExporter) *ReportUseCase {
	return &ReportUseCase{store: store, exporter: exporter}
}

// PartyStatement estado de cuenta del tercero: saldo anterior a from, documentos del rango con saldo corrido y saldo final.
// Si kinds no está vacío, el tercero debe ser de alguno de esos tipos (ErrForbidden en otro caso).
func (uc *ReportUseCase) PartyStatement(ctx context.Context, companyID, partyID string, rng dto.DateRange, kinds ...string) (*dto.PartyStatementDTO, error) {
	repos := uc.store.Repos()
	party, err := repos.Parties.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, fmt.Errorf("%w: tercero %s", domain.ErrNotFound, partyID)
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if len(kinds) > 0 && !slices.Contains(kinds, party.Kind) {
		return nil, fmt.Errorf("%w: sin acceso al estado de cuenta de %s", domain.ErrForbidden, party.Kind)
	}
	entries, err := repos.Reports.PartyEntries(ctx, party.ID, nil, rng.To)
	if err != nil {
		return nil, err
	}

	opening := party.OpeningBalance
	st := &dto.PartyStatementDTO{From: rng.From, To: rng.To, Lines: []dto.StatementLine{}}
	balance := decimal.Zero
	started := false
	for _, e := range entries {
		if rng.From != nil && e.Date.Before(*rng.From) {
			opening = opening.Add(e.Effect)
			continue
		}
		if !started {
			balance = opening
			started = true
		}
		balance = balance.Add(e.Effect)
		line := dto.StatementLine{
			Date:         e.Date,
			DocumentType: e.DocumentType,
			DocumentID:   e.DocumentID,
			Number:       e.Number,
			Debit:        decimal.Zero,
			Credit:       decimal.Zero,
			Balance:      balance,
		}
		// Cliente: lo que aumenta su deuda es débito. Proveedor: lo que aumenta nuestra deuda es crédito.
		increases := e.Effect.IsPositive()
		if party.Kind == entity.PartyKindSupplier {
			increases = !increases
		}
		if increases {
			line.Debit = e.Effect.Abs()
		} else {
			line.Credit = e.Effect.Abs()
		}
		st.TotalDebit = st.TotalDebit.Add(line.Debit)
		st.TotalCredit = st.TotalCredit.Add(line.Credit)
		st.Lines = append(st.Lines, line)
	}
	if !started {
		balance = opening
	}
	st.Party = *usecase.ToPartyResponse(party, balance)
	st.OpeningBalance = opening
	st.ClosingBalance = balance
	return st, nil
}

// StockReport existencias valorizadas al costo promedio. lowOnly filtra productos en o bajo el mínimo.
func (uc *ReportUseCase) StockReport(ctx context.Context, companyID string, lowOnly bool) (*dto.StockReportDTO, error) {
	products, err := uc.store.Repos().Products.List(ctx, repository.ProductFilter{
		CompanyID:    companyID,
		LowStockOnly: lowOnly,
	})
	if err != nil {
		return nil, err
	}
	report := &dto.StockReportDTO{Items: make([]dto.StockReportItem, 0, len(products)), TotalValue: decimal.Zero}
	for _, p := range products {
		value := p.CurrentStock.Mul(p.BuyPrice).Round(2)
		item := dto.StockReportItem{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			Unit:         p.Unit,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			BuyPrice:     p.BuyPrice,
			StockValue:   value,
			IsLow:        p.IsLowStock(),
		}
		if item.IsLow {
			report.LowCount++
		}
		report.TotalValue = report.TotalValue.Add(value)
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// AccountLedger libro de una caja o banco con saldo corrido.
func (uc *ReportUseCase) AccountLedger(ctx context.Context, companyID, accountID string, rng dto.DateRange) (*dto.AccountLedgerDTO, error) {
	repos := uc.store.Repos()
	account, err := repos.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, accountID)
	}
	if account.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	opening := account.InitialBalance
	if rng.From != nil {
		before, err := repos.TreasuryMovements.SumBefore(ctx, account.ID, *rng.From)
		if err != nil {
			return nil, err
		}
		opening = opening.Add(before)
	}
	movements, err := repos.TreasuryMovements.List(ctx, repository.TreasuryMovementFilter{
		CompanyID: companyID,
		AccountID: account.ID,
		From:      rng.From,
		To:        rng.To,
	})
	if err != nil {
		return nil, err
	}
	ledger := &dto.AccountLedgerDTO{
		Account:        *treasury.ToAccountResponse(account),
		From:           rng.From,
		To:             rng.To,
		OpeningBalance: opening,
		Lines:          make([]dto.LedgerLine, 0, len(movements)),
	}
	balance := opening
	for _, m := range movements {
		balance = balance.Add(m.Amount)
		ledger.Lines = append(ledger.Lines, dto.LedgerLine{
			Date:        m.Date,
			SourceType:  m.SourceType,
			SourceID:    m.SourceID,
			Description: m.Description,
			Amount:      m.Amount,
			Balance:     balance,
		})
	}
	ledger.ClosingBalance = balance
	return ledger, nil
}

// IntegrityCheck concilia los saldos desnormalizados contra sus libros.
// OK es true cuando ningún producto ni cuenta presenta diferencias.
func (uc *ReportUseCase) IntegrityCheck(ctx context.Context, companyID string) (*dto.IntegrityReportDTO, error) {
	reports := uc.store.Repos().Reports
	stock, err := reports.StockDiscrepancies(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("conciliación de inventario: %w", err)
	}
	accounts, err := reports.AccountDiscrepancies(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("conciliación de tesorería: %w", err)
	}
	out := &dto.IntegrityReportDTO{
		Products:  make([]dto.StockDiscrepancyDTO, 0, len(stock)),
		Accounts:  make([]dto.AccountDiscrepancyDTO, 0, len(accounts)),
		CheckedAt: time.Now(),
	}
	for _, s := range stock {
		out.Products = append(out.Products, dto.StockDiscrepancyDTO{
			ProductID:    s.ProductID,
			Code:         s.Code,
			Name:         s.Name,
			CurrentStock: s.CurrentStock,
			LedgerStock:  s.LedgerStock,
		})
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, dto.AccountDiscrepancyDTO{
			AccountID: a.AccountID,
			Name:      a.Name,
			Balance:   a.Balance,
			Expected:  a.Expected,
		})
	}
	out.OK = len(out.Products) == 0 && len(out.Accounts) == 0
	return out, nil
}

// ExportStockReport genera el reporte de existencias en .xlsx.
func (uc *ReportUseCase) ExportStockReport(ctx context.Context, companyID string, lowOnly bool) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportación a Excel no configurada")
	}
	report, err := uc.StockReport(ctx, companyID, lowOnly)
	if err != nil {
		return nil, err
	}
	return uc.exporter.StockReport(report)
}

// ExportPartyStatement genera el estado de cuenta en .xlsx.
func (uc *ReportUseCase) ExportPartyStatement(ctx context.Context, companyID, partyID string, rng dto.DateRange, kinds ...string) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportación a Excel no configurada")
	}
	st, err := uc.PartyStatement(ctx, companyID, partyID, rng, kinds...)
	if err != nil {
		return nil, err
	}
	return uc.exporter.PartyStatement(st)
}
