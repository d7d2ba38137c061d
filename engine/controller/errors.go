package controller

import "errors"

// ErrQueueFull is returned by EventQueue.Send when the queue already holds its capacity for this tick.
var ErrQueueFull = errors.New("controller: event queue full")

// ErrInvalidConfig is returned by Validate for sensitivity or radius settings the updates cannot use.
var ErrInvalidConfig = errors.New("controller: invalid config")
