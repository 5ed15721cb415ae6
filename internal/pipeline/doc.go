// Package pipeline turns a loaded employee table into dashboard data.
//
// The stages are pure functions over immutable core.Table values:
//
//	raw --Derive--> derived --Filter(selection)--> filtered --+--Aggregation.Apply--> aggregate tables
//	                                                          +--Summarize----------> summary metrics
//
// Runner wires the stages together for one loaded dataset and rebuilds the
// whole Dashboard on every selection change. Nothing is cached between
// builds.
package pipeline
