// Package decision defines the validated meeting verdict and the analyzer
// capability that produces it.
//
// Parse is the contract check: given the raw payload an analyzer returned,
// it either yields a Decision or an ANALYSIS_CONTRACT_VIOLATION error naming
// the first offending field. Every field must be present; unknown values are
// null, never absent. Nothing is coerced.
//
// LLMAnalyzer is the language-model implementation of Analyzer. Tests and
// alternate backends implement Analyzer directly.
package decision
