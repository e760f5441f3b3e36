package gimbal

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance for external snapshot payloads.
var validate = validator.New()

// Codec defines the serialization contract for snapshot persistence.
// Implement this interface to use alternative formats.
type Codec interface {
	// Marshal serializes a value to bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Marshal serializes v to JSON.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Marshal serializes v to YAML.
func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// offsetPayload is the wire shape of an Offset.
type offsetPayload struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// statePayload is the wire shape of a ViewState. Validation tags reject
// payloads no gesture could produce: negative scales and tags outside the
// closed scale-state set.
type statePayload struct {
	Position   offsetPayload  `json:"position" yaml:"position"`
	Scale      float64        `json:"scale" yaml:"scale" validate:"gte=0"`
	Rotation   float64        `json:"rotation" yaml:"rotation"`
	FocusPoint *offsetPayload `json:"rotation_focus_point,omitempty" yaml:"rotation_focus_point,omitempty"`
	ScaleState int            `json:"scale_state" yaml:"scale_state" validate:"gte=0,lte=4"`
}

func payloadFrom(s ViewState) statePayload {
	p := statePayload{
		Position:   offsetPayload{X: s.Position.X, Y: s.Position.Y},
		Scale:      s.Scale,
		Rotation:   s.Rotation,
		ScaleState: int(s.ScaleState),
	}
	if s.RotationFocusPoint.Valid {
		p.FocusPoint = &offsetPayload{
			X: s.RotationFocusPoint.Offset.X,
			Y: s.RotationFocusPoint.Offset.Y,
		}
	}
	return p
}

func (p statePayload) state() ViewState {
	s := ViewState{
		Position:   Offset{X: p.Position.X, Y: p.Position.Y},
		Scale:      p.Scale,
		Rotation:   p.Rotation,
		ScaleState: ScaleState(p.ScaleState),
	}
	if p.FocusPoint != nil {
		s.RotationFocusPoint = FocusAt(Offset{X: p.FocusPoint.X, Y: p.FocusPoint.Y})
	}
	return s
}

// MarshalState serializes a snapshot with the given codec, for session
// persistence or mirroring to another viewer.
func MarshalState(c Codec, s ViewState) ([]byte, error) {
	data, err := c.Marshal(payloadFrom(s))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes and validates a snapshot serialized with
// MarshalState (or produced by an external collaborator).
func UnmarshalState(c Codec, data []byte) (ViewState, error) {
	var p statePayload
	if err := c.Unmarshal(data, &p); err != nil {
		return ViewState{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := validate.Struct(p); err != nil {
		return ViewState{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	return p.state(), nil
}
