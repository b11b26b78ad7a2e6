// Package storyteller turns raw scroll metrics into normalized progress values
// in [0,1] and dispatches them to range observers. The engine knows nothing about
// the DOM or any UI framework: a host samples metrics from a scroll Source, feeds
// them in, and reacts to the plain callbacks the engine invokes. Programmatic
// scrolling is reduced to computing a target offset and handing it to an
// Actuator.
package storyteller
