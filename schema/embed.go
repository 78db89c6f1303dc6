package schema

import _ "embed"

// ManifestV1Schema contains the JSON schema for warden manifests.
//
//go:embed warden.v1.json
var ManifestV1Schema []byte
