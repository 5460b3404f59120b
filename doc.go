// Package tzero tracks security holdings for accounts running same-day (T0)
// round-trip strategies on A-share markets.
//
// The package owns two stateful engines. The position engine keeps, for every
// account, the broker-reported holdings (RealPosition) and the engine-only T0
// round trips (VirtualPosition), and composes the T0 execution protocol across
// both through PositionManager. The ledger engine (LedgerRollingCalculator)
// rolls a per-account, per-instrument ledger value forward across trading
// days under corporate-action adjustments:
//
//	Ledger_T = Ledger_{T-1} × AF_T + E_T
//
// Everything else in the module (the CCTJ feed parser, the daily ledger
// book, the risk checker, the order generator and the CLI) reads or produces
// immutable snapshots of those two engines.
package tzero
