package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/roach88/idlecore/internal/canon"
)

const (
	magic        = "IDLC"
	formatLZ4    = 1
	checksumSize = 32
	headerSize   = len(magic) + 1 + checksumSize

	// maxPayload bounds decompression of hostile input.
	maxPayload = 4 << 20
)

var (
	// ErrMalformed reports a blob that cannot be decoded.
	ErrMalformed = errors.New("malformed save data")
	// ErrChecksum reports a blob whose payload does not match its checksum.
	ErrChecksum = errors.New("save checksum mismatch")
)

// Encode serialises s into a blob. s.Version is overwritten.
func Encode(s State) (string, error) {
	s.Version = Version
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	var frame bytes.Buffer
	zw := lz4.NewWriter(&frame)
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}

	sum := canon.Sum(canon.DomainSave, frame.Bytes())

	out := make([]byte, 0, headerSize+frame.Len())
	out = append(out, magic...)
	out = append(out, formatLZ4)
	out = append(out, sum[:]...)
	out = append(out, frame.Bytes()...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decode parses a blob produced by Encode or by an older release.
// Errors wrap ErrMalformed or ErrChecksum.
func Decode(blob string) (State, error) {
	raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace([]byte(blob))))
	if err != nil {
		return State{}, fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}

	switch {
	case bytes.HasPrefix(raw, []byte(magic)):
		payload, err := openEnvelope(raw)
		if err != nil {
			return State{}, err
		}
		return decodePayload(payload)
	case len(raw) > 0 && raw[0] == '{':
		return decodePayload(raw)
	default:
		return State{}, fmt.Errorf("%w: unrecognised header", ErrMalformed)
	}
}

// Checksum returns the hex checksum stored in an envelope blob, or the
// checksum of the raw bytes for legacy blobs. Hosts use it to label saves.
func Checksum(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace([]byte(blob))))
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}
	if bytes.HasPrefix(raw, []byte(magic)) && len(raw) >= headerSize {
		return fmt.Sprintf("%x", raw[len(magic)+1:headerSize]), nil
	}
	return canon.SumHex(canon.DomainBlob, raw), nil
}

func openEnvelope(raw []byte) ([]byte, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	if format := raw[len(magic)]; format != formatLZ4 {
		return nil, fmt.Errorf("%w: unsupported format %d", ErrMalformed, format)
	}
	frame := raw[headerSize:]
	want := raw[len(magic)+1 : headerSize]
	got := canon.Sum(canon.DomainSave, frame)
	if !bytes.Equal(want, got[:]) {
		return nil, ErrChecksum
	}

	zr := lz4.NewReader(bytes.NewReader(frame))
	payload, err := io.ReadAll(io.LimitReader(zr, maxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %v", ErrMalformed, err)
	}
	if len(payload) > maxPayload {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrMalformed, maxPayload)
	}
	return payload, nil
}

func decodePayload(payload []byte) (State, error) {
	var shape struct {
		Version    *int                       `json:"version"`
		Research   json.RawMessage            `json:"research"`
		LastUpdate json.RawMessage            `json:"last_update"`
		Buildings  map[string]json.RawMessage `json:"buildings"`
	}
	if err := json.Unmarshal(payload, &shape); err != nil {
		return State{}, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	if isLegacy(shape.Version, shape.Research, shape.LastUpdate, shape.Buildings) {
		return decodeLegacy(payload)
	}

	var s State
	if err := json.Unmarshal(payload, &s); err != nil {
		return State{}, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	return s, nil
}

// isLegacy picks the payload layout. An explicit version decides; without
// one, only fields unique to the version 1 layout select the legacy reader.
func isLegacy(version *int, research, lastUpdate json.RawMessage, buildings map[string]json.RawMessage) bool {
	if version != nil {
		return *version < Version
	}
	if research != nil || lastUpdate != nil {
		return true
	}
	_, nested := buildings["levels"]
	return nested
}
