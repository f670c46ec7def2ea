// Package codec converts engine state to and from the opaque save blob.
//
// A blob is the standard base64 encoding of an envelope:
//
//	"IDLC" | format (1 byte) | blake3 checksum (32 bytes) | lz4 frame
//
// The lz4 frame holds the JSON payload described by State. The checksum
// covers the compressed frame and is keyed with canon.DomainSave.
//
// Older blobs that are the base64 encoding of a bare JSON payload are still
// accepted, including the original version 1 layout.
package codec

// Version is the payload version written by Encode.
const Version = 2

// State is the persisted form of an engine. Identifiers are the boundary
// string ids; amounts are floats so that payloads written by other tools
// with fractional counts still parse.
type State struct {
	Version      int                `json:"version"`
	Resources    map[string]float64 `json:"resources"`
	Buildings    map[string]float64 `json:"buildings"`
	Techs        []string           `json:"techs"`
	Achievements []string           `json:"achievements"`
	Upgrades     map[string]float64 `json:"upgrades"`
	Prestige     PrestigeState      `json:"prestige"`
	Run          RunState           `json:"run"`
	TickRate     float64            `json:"tick_rate"`
	Clock        ClockState         `json:"clock"`
	Hazards      HazardState        `json:"hazards"`
}

type PrestigeState struct {
	Points   float64 `json:"points"`
	Resets   int     `json:"resets"`
	Lifetime float64 `json:"lifetime"`
}

// RunState is progress since the last prestige.
type RunState struct {
	Produced map[string]float64 `json:"produced"`
}

// ClockState is the simulation clock baseline. Carry is simulated time
// already elapsed but not yet integrated.
type ClockState struct {
	Started bool    `json:"started"`
	Last    float64 `json:"last"`
	Carry   float64 `json:"carry"`
}

// HazardState is the marshalled random source. Empty means reseed.
type HazardState struct {
	RNG []byte `json:"rng,omitempty"`
}
