// Package signals turns raw procurement inputs (tariff rate, demand signal,
// stock position, weather) into the bounded scores the rule engine compares.
//
// Every function here is pure. Classification levels and notes exist for the
// audit trail only; the rule engine decides on the numeric scores.
package signals
