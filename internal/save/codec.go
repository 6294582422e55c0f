package save

import (
	"fmt"

	"github.com/invopop/yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeBinary renders env as msgpack, zstd-compressed — the compact
// binary save form (spec §6).
func EncodeBinary(env Envelope) ([]byte, error) {
	raw, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("save: marshal msgpack: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("save: new zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// DecodeBinary reverses EncodeBinary. A version mismatch or corrupt stream
// is a Save-decode error (spec §7); the caller is expected to fall back to
// a fresh world.
func DecodeBinary(data []byte) (Envelope, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Envelope{}, fmt.Errorf("save: new zstd reader: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return Envelope{}, fmt.Errorf("save: zstd decompress: %w", err)
	}
	var env Envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("save: unmarshal msgpack: %w", err)
	}
	if env.Version != CurrentVersion {
		return Envelope{}, fmt.Errorf("save: version mismatch: got %d, want %d", env.Version, CurrentVersion)
	}
	return env, nil
}

// EncodeText renders env as YAML — the human-readable save form, easier
// to diff and hand-edit than the binary form.
func EncodeText(env Envelope) ([]byte, error) {
	out, err := yaml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("save: marshal yaml: %w", err)
	}
	return out, nil
}

// DecodeText reverses EncodeText.
func DecodeText(data []byte) (Envelope, error) {
	var env Envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("save: unmarshal yaml: %w", err)
	}
	if env.Version != CurrentVersion {
		return Envelope{}, fmt.Errorf("save: version mismatch: got %d, want %d", env.Version, CurrentVersion)
	}
	return env, nil
}
