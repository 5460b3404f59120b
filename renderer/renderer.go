// Package renderer turns engine snapshots into markdown reports.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/yxtq/tzero"
)

// DeskMarkdown renders the desk-wide position summary.
func DeskMarkdown(s tzero.DeskSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Desk Positions")
	if !s.UpdateTime.IsZero() {
		doc.PlainText(fmt.Sprintf("As of %s", s.UpdateTime.Format("2006-01-02 15:04:05")))
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Market Value"), md.Bold(s.TotalMarketValue.String())},
		Rows: [][]string{
			{"Accounts", fmt.Sprintf("%d", s.AccountCount)},
			{"Positions", fmt.Sprintf("%d", s.PositionCount)},
			{"Unrealized P/L", s.TotalProfitLoss.SignedString()},
			{"T0 P/L", s.T0ProfitLoss.SignedString()},
			{"Open Round Trips", fmt.Sprintf("%d", s.ActiveT0Count)},
		},
	})

	if len(s.Accounts) > 0 {
		doc.H2("Accounts")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Account", "Positions", "Market Value", "Unrealized P/L", "T0 P/L"},
		}
		for _, a := range s.Accounts {
			table.Rows = append(table.Rows, []string{
				a.AccountID,
				fmt.Sprintf("%d", a.PositionCount),
				a.TotalMarketValue.String(),
				a.TotalProfitLoss.SignedString(),
				a.T0ProfitLoss.SignedString(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// AccountMarkdown renders one account with its holdings and round trips.
func AccountMarkdown(a *tzero.AccountPosition) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	s := a.Summary()
	doc.H1(fmt.Sprintf("Account %s", a.AccountID))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Market Value"), md.Bold(s.TotalMarketValue.String())},
		Rows: [][]string{
			{"Cost", s.TotalCost.String()},
			{"Unrealized P/L", s.TotalProfitLoss.SignedString()},
			{"T0 P/L", s.T0ProfitLoss.SignedString()},
		},
	})

	positions := a.Positions()
	if len(positions) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Stock", "Name", "Total", "Sellable", "Cost", "Last", "P/L"},
		}
		for _, p := range positions {
			table.Rows = append(table.Rows, []string{
				p.StockCode,
				p.StockName,
				fmt.Sprintf("%d", p.TotalVolume),
				fmt.Sprintf("%d", p.SellableVolume()),
				p.CostPrice.String(),
				p.CurrentPrice.String(),
				p.ProfitLoss().SignedString(),
			})
		}
		doc.Table(table)
	}

	virtuals := a.VirtualPositions()
	if len(virtuals) > 0 {
		doc.H2("Round Trips")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Stock", "Type", "Volume", "P/L", "Rate", "Status"},
		}
		for _, v := range virtuals {
			table.Rows = append(table.Rows, []string{
				v.StockCode,
				v.Type.String(),
				fmt.Sprintf("%d", v.OpenVolume),
				v.ProfitLoss.SignedString(),
				v.ProfitRate.SignedString(),
				v.Status.String(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// RollingMarkdown renders every ledger of the calculator with its latest roll.
func RollingMarkdown(c *tzero.LedgerRollingCalculator) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Rolling Ledgers")
	states := c.AllStates()
	if len(states) == 0 {
		doc.PlainText("No ledgers yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Stock", "Date", "Previous", "Factor", "Amount", "Current"},
	}
	for _, s := range states {
		table.Rows = append(table.Rows, []string{
			s.AccountID,
			s.StockCode,
			s.CurrentDate.String(),
			s.PreviousLedger.String(),
			s.Factor.String(),
			s.Amount.SignedString(),
			s.CurrentLedger.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// HistoryMarkdown renders the audit trail of one ledger.
func HistoryMarkdown(c *tzero.LedgerRollingCalculator, key tzero.LedgerKey) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger %s", key))
	records := c.CalculationHistory(key)
	if len(records) == 0 {
		doc.PlainText("No calculations yet.")
		return doc.String()
	}

	var lines []string
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s: %s", r.TradeDate, r.Calculation))
	}
	doc.OrderedList(lines...)

	return doc.String()
}

// RiskMarkdown renders the findings of a risk run.
func RiskMarkdown(alerts []tzero.RiskAlert) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Risk Report")
	if len(alerts) == 0 {
		doc.PlainText("No findings. Trading is clear.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Code", "Level", "Account", "Stock", "Finding"},
	}
	for _, a := range alerts {
		table.Rows = append(table.Rows, []string{
			a.Code,
			a.Level.String(),
			a.AccountID,
			a.StockCode,
			a.Message,
		})
	}
	doc.Table(table)

	if !tzero.CanTrade(alerts) {
		doc.PlainText(md.Bold("Trading is blocked."))
	}

	return doc.String()
}

// BookMarkdown renders one day of the ledger book.
func BookMarkdown(b *tzero.LedgerBook, s tzero.BookSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger Book %s", s.TradeDate))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Market Value"), md.Bold(s.MarketValue.String())},
		Rows: [][]string{
			{"Records", fmt.Sprintf("%d", s.Records)},
			{"Accounts", fmt.Sprintf("%d", s.Accounts)},
			{"Cost", s.CostAmount.String()},
			{"P/L", s.ProfitLoss.SignedString()},
		},
	})

	records := b.OnDate(s.TradeDate)
	if len(records) > 0 {
		doc.H2("Records")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Account", "Stock", "Volume", "Market Value", "P/L"},
		}
		for _, r := range records {
			table.Rows = append(table.Rows, []string{
				r.AccountID,
				r.StockCode,
				fmt.Sprintf("%d", r.TotalVolume),
				r.MarketValue.String(),
				r.ProfitLoss.SignedString(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}
