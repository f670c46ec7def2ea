// Package engine implements the idle economy simulation core.
//
// An Engine owns every piece of numeric game state: the resource ledger,
// the building registry, the tech tree, upgrades, achievements, prestige
// and the event log. It never performs I/O and never schedules itself; the
// host calls Tick with the current time and the engine integrates whatever
// whole fixed steps have elapsed since the previous call.
//
// Step order is fixed: production is computed from the current buildings,
// applied to the ledger with a per-resource floor at zero, random hazards
// are rolled, then achievements are evaluated in declaration order. Every
// message produced along the way is stamped by a logical Clock and pushed
// to a bounded event log the host drains with PopLog.
//
// Mutations (Build, Research, Upgrade, Gather, SetTickRate, Load) either
// complete or return an error and leave the state untouched. Rejected
// mutations return a *RejectionError and emit no event.
//
// An Engine is not safe for concurrent use. The outcome of a sequence of
// calls depends only on the calls and the timestamps passed to Tick.
package engine
