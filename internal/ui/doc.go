// Package ui implements the trellis terminal dashboard.
//
// The dashboard is a bubbletea program with one table per resource tab
// (classifications, detections, devices, environment readings). It renders
// snapshots from the shared state store on a timer and never talks to the
// API itself; the background poller owns all network traffic.
package ui
