// Package live defines arrival predictions and the providers that fetch them.
//
// A Prediction is whatever the upstream API returned, with every field
// optional. Dedupe turns a batch of predictions into one Arrival per vehicle,
// dropping incomplete predictions and keeping each vehicle's soonest arrival.
package live
