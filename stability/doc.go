// Package stability implements the bounded-history rolling-window
// statistics engine: per-(entity, metric) sample storage with
// exponential smoothing (History), and the analyzer that derives
// variance, trend, anomalies, and weighted stability scores from it
// (Analyzer).
package stability
