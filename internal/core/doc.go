// Package core provides the inventory data engine.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, the directory watcher, CLI tools,
// or tests without modification.
//
// # Architecture
//
// The package is organized around four concepts:
//
//   - Record Schema: The four required columns and the header validation
//     predicate ([Validate]).
//   - Loader: Directory scan, per-file decode/parse/validate, and
//     consolidation into one [Inventory] with a [LoadSummary].
//   - Queries: Independent filters over an [Inventory] (name, category,
//     price range, quantity range).
//   - Reports: Category-grouped statistics ([CategoryReport]) and CSV export.
//
// The [Engine] ties these together for one session. It holds the current
// Inventory snapshot and replaces it wholesale on each load that accepts at
// least one file:
//
//	loader, err := core.NewLoader(core.DefaultLoaderConfig())
//	eng := core.NewEngine(loader, core.DefaultLoadWait)
//	inv, summary, err := eng.Load(ctx, "./data")
//	if err != nil {
//	    // core.KindOf(err) == core.KindNotFound
//	}
//	report, err := eng.Report()
//	err = core.ExportReport(report, "rapport.csv")
//
// # Input Format
//
// Files are ISO-8859-1 by default and must carry a header row containing
// the columns "nom du produit", "catégorie", "quantité" and "prix unitaire".
// Extra columns are dropped. Column order does not matter.
//
// # Error Handling
//
// Every failure returned to a caller is a [*Error] classified by [ErrorKind].
// File-level failures during a load never abort the batch; they are
// recorded on the file's [FileOutcome]. Technical errors are mapped to
// user-facing messages with support codes using [MapError].
package core
