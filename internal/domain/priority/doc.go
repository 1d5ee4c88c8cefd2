// Package priority implements the task prioritization engine: per-attribute
// score functions, named strategy weight profiles, the weighted combiner with
// its explanation text, and the dependency cycle detector that gates every
// batch before it is scored.
//
// Everything here is a pure function of its inputs. The only time dependency
// is the reference "today", which callers pass explicitly or inject into an
// Engine through WithClock.
package priority
