package appidentityassets

import _ "embed"

// YAML is the embedded copy of `.fulmen/app.yaml`, mirrored into a
// Go-embeddable location so the standalone binary carries its identity.
//
//go:embed app.yaml
var YAML []byte
