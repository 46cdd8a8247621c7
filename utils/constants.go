// File: utils/constants.go
package utils

import "time"

// SessionResponsePrefix is the prefix used for cached copilot response keys.
const SessionResponsePrefix = "copilot:resp:"

// SessionBusyPrefix is the prefix used for in-flight request guard keys.
const SessionBusyPrefix = "copilot:busy:"

// SessionResponseTTL is how long a session's last response stays replayable.
const SessionResponseTTL = 30 * time.Minute

// SessionBusyTTL bounds how long a guard survives a call that never returns.
const SessionBusyTTL = 2 * time.Minute
