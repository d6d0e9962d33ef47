// Package domain models multi-model hourly weather forecasts, marine
// forecasts and station observations for a single dive site.
//
// # Data Sources
//
// Forecasts come from the Open-Meteo forecast API, one request per model
// (icon_seamless, gfs_seamless, ecmwf_ifs025, ...). The marine forecast comes
// from the Open-Meteo marine API. The real-time observation comes from the
// Aviation Weather Center METAR feed. Adapters decode each payload into a
// [RawSeries] or an [Observation]; everything in this package is pure.
//
// # Conventions
//
// Timestamps:
//
//	Upstream hourly timestamps are local wall-clock strings without a zone,
//	e.g. "2024-05-01T08:00". They are kept as strings in the output so the
//	report shows exactly what the upstream sent; [ParseLocalTime] reads them.
//
// Canonical units:
//
//	wind and gust: knots        temperature: °C
//	precipitation: mm           precipitation probability: %
//	visibility: km              wave/swell heights: m
//	directions: degrees         periods: seconds
//
//	Upstream unit labels come from the "hourly_units" object and are mapped
//	with [ParseUnit]; [Convert] does the arithmetic.
//
// Daylight window:
//
//	Summaries and renderings cover 08:00–18:00 local on the target date
//	([DaylightWindow]). When the feed has no sample on the target date the
//	first 11 in-window samples anywhere in the feed are used and the series
//	is tagged Approximated.
//
// Missing values:
//
//	Null samples inside the window are dropped from the parameter slices but
//	not from Times, so parameter slices can be shorter than Times. Consumers
//	index by position and treat positions past the end as missing.
//
// Compass:
//
//	Directions snap to 8 points: index = round(deg/45) mod 8 over
//	N, NE, E, SE, S, SW, W, NW. See [CompassIndex].
//
// # Failure Taxonomy
//
// A source that could not be fetched or decoded is recorded as a
// [SourceError] of kind [KindSourceUnavailable]. A source that returned data
// with nothing in the window is [KindNoDataForWindow]. Neither is fatal: the
// series carries the error and the rest of the report is built without it.
// A station that cannot be resolved yields a [StationSnapshot] with
// Available=false and a diagnostic message.
package domain
