// Package model defines domain data structures shared by the session loop and
// the services: audio formats, download and conversion tasks, the transient
// state of one loop iteration, and the status enum they all move through.
package model
