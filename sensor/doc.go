// Package sensor produces the simulated readings behind the dashboard.
//
// A Sampler draws readings, a History keeps the recent ones and a Feed ties
// them together: it samples on a fixed interval, records every reading and
// fans it out to live subscribers.
package sensor
