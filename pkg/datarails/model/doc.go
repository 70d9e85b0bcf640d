// Package model provides the descriptors shared by the datarails runner and the
// options that hook into it. It defines what a hook sees of a step and of an
// action, and the interface a hook implements.
package model
