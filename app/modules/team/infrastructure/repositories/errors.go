package teamdb

import "errors"

// ErrTeamNotFound is returned when no team exists for the requested user
// or team id.
var ErrTeamNotFound = errors.New("team not found")
